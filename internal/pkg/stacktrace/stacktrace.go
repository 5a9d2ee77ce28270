package stacktrace

import "strings"

// InternalPaths extracts the file:line frames under internal/ from a raw
// runtime stack dump. Panic logs keep only these frames so the interesting
// part of the trace is not buried under runtime and library noise.
func InternalPaths(stack []byte) []string {
	var paths []string

	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		markIdx := strings.Index(line, ".go:")
		if markIdx == -1 {
			continue
		}
		intIdx := strings.Index(line, "/internal/")
		if intIdx == -1 {
			continue
		}

		// Keep "internal/...file.go:NN" and cut the trailing pc offset.
		frame := line[intIdx+1:]
		if sp := strings.IndexByte(frame, ' '); sp != -1 {
			frame = frame[:sp]
		}
		paths = append(paths, frame)
	}

	return paths
}
