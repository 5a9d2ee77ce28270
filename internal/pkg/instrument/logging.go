package instrument

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// initLogging installs the process-wide slog handler. Records go to stdout as
// JSON and, when a logger provider is configured, over the OTLP bridge. Every
// record picks up the service name and correlation ID, and configured
// sensitive fields are masked at any depth.
func initLogging(serviceName string, lp *sdklog.LoggerProvider, maskFields []string) {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		AddSource:   true,
		ReplaceAttr: renameStandardAttrs,
	})

	var sink slog.Handler = stdout
	if lp != nil {
		bridge := otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(lp))
		sink = &fanoutHandler{targets: []slog.Handler{stdout, bridge}}
	}

	slog.SetDefault(slog.New(&enrichHandler{
		Handler:     &redactHandler{next: sink, mask: newFieldMask(maskFields)},
		serviceName: serviceName,
	}))
}

// renameStandardAttrs shortens the built-in keys and trims source paths down
// to their internal/ suffix so log lines stay compact.
func renameStandardAttrs(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "ts"
	case slog.LevelKey:
		a.Key = "severity"
	case slog.SourceKey:
		src, ok := a.Value.Any().(*slog.Source)
		if !ok {
			break
		}
		if !strings.Contains(src.File, "/internal/") {
			return slog.Attr{}
		}
		rel := filepath.Join("internal", strings.SplitAfter(src.File, "/internal/")[1])
		return slog.String("file", fmt.Sprintf("%s:%d", rel, src.Line))
	}
	return a
}

// enrichHandler stamps each record with the service name and the request
// correlation ID when one is present on the context.
type enrichHandler struct {
	slog.Handler
	serviceName string
}

func (h *enrichHandler) Handle(ctx context.Context, r slog.Record) error {
	if cID := GetCorrelationID(ctx); cID != "" {
		r.AddAttrs(slog.String("_cID", cID))
	}
	r.AddAttrs(slog.String("service", h.serviceName))
	return h.Handler.Handle(ctx, r)
}

// fanoutHandler delivers each record to every target that accepts its level.
type fanoutHandler struct {
	targets []slog.Handler
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range f.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, t := range f.targets {
		if !t.Enabled(ctx, record.Level) {
			continue
		}
		if err := t.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(f.targets))
	for i, t := range f.targets {
		out[i] = t.WithAttrs(attrs)
	}
	return &fanoutHandler{targets: out}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(f.targets))
	for i, t := range f.targets {
		out[i] = t.WithGroup(name)
	}
	return &fanoutHandler{targets: out}
}

// redactHandler rewrites records through the field mask before they reach the
// sink.
type redactHandler struct {
	next slog.Handler
	mask *fieldMask
}

func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.mask.empty() {
		return h.next.Handle(ctx, record)
	}

	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(h.mask.attr(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &redactHandler{next: h.next.WithAttrs(attrs), mask: h.mask}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	return &redactHandler{next: h.next.WithGroup(name), mask: h.mask}
}

// fieldMask knows which attribute keys hold secrets. Matching is
// case-insensitive and applies inside groups, JSON strings and decoded maps.
type fieldMask struct {
	keys map[string]struct{}
}

func newFieldMask(fields []string) *fieldMask {
	keys := make(map[string]struct{})
	for _, field := range fields {
		field = strings.TrimSpace(strings.ToLower(field))
		if field != "" {
			keys[field] = struct{}{}
		}
	}
	return &fieldMask{keys: keys}
}

func (m *fieldMask) empty() bool { return len(m.keys) == 0 }

func (m *fieldMask) hidden(key string) bool {
	_, found := m.keys[strings.ToLower(key)]
	return found
}

func (m *fieldMask) attr(attr slog.Attr) slog.Attr {
	if m.hidden(attr.Key) {
		return slog.String(attr.Key, "***")
	}

	switch attr.Value.Kind() {
	case slog.KindGroup:
		group := attr.Value.Group()
		out := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			out = append(out, m.attr(ga))
		}
		attr.Value = slog.GroupValue(out...)
	case slog.KindString:
		if masked, ok := m.jsonString([]byte(attr.Value.String())); ok {
			attr.Value = slog.StringValue(masked)
		}
	case slog.KindAny:
		val := attr.Value.Any()
		if val == nil {
			return attr
		}
		if masked, ok := m.collection(val); ok {
			attr.Value = slog.AnyValue(masked)
			return attr
		}
		if b, ok := val.([]byte); ok {
			if masked, ok := m.jsonString(b); ok {
				attr.Value = slog.StringValue(masked)
			}
		}
	}

	return attr
}

// collection masks decoded map and slice values.
func (m *fieldMask) collection(val any) (any, bool) {
	switch v := val.(type) {
	case map[string]any:
		return m.walk(v), true
	case map[string]string:
		converted := make(map[string]any, len(v))
		for k, s := range v {
			converted[k] = s
		}
		return m.walk(converted), true
	case []any:
		return m.walk(v), true
	default:
		return nil, false
	}
}

// jsonString masks a string that holds a JSON document and re-encodes it.
func (m *fieldMask) jsonString(payload []byte) (string, bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return "", false
	}
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", false
	}
	encoded, err := json.Marshal(m.walk(decoded))
	if err != nil {
		return "", false
	}
	return string(encoded), true
}

func (m *fieldMask) walk(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.hidden(k) {
				out[k] = "***"
				continue
			}
			out[k] = m.walk(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = m.walk(inner)
		}
		return out
	default:
		return v
	}
}
