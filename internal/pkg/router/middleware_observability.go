package router

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Bodies larger than this are truncated in logs.
const logBodyLimit = 32 * 1024

// masker hides configured sensitive fields (passwords, OTP codes, tokens)
// before request and response payloads reach the log stream.
type masker struct {
	keys map[string]struct{}
}

func newMasker(cfg config.Config) *masker {
	keys := make(map[string]struct{})
	if cfg != nil {
		for _, field := range cfg.GetArray("instrument.log_mask_fields") {
			field = strings.TrimSpace(strings.ToLower(field))
			if field != "" {
				keys[field] = struct{}{}
			}
		}
	}
	return &masker{keys: keys}
}

func (m *masker) hidden(key string) bool {
	_, found := m.keys[strings.ToLower(key)]
	return found
}

func (m *masker) headers(h http.Header) http.Header {
	if len(m.keys) == 0 {
		return h
	}

	out := h.Clone()
	for key := range out {
		if m.hidden(key) {
			out.Set(key, "***")
		}
	}
	return out
}

// value walks decoded JSON and replaces masked fields at any depth.
func (m *masker) value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.hidden(k) {
				out[k] = "***"
				continue
			}
			out[k] = m.value(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = m.value(inner)
		}
		return out
	default:
		return v
	}
}

// body renders a request body for logging: JSON and form payloads are decoded
// and masked, anything else is logged raw when printable.
func (m *masker) body(contentType string, raw []byte) any {
	if len(raw) == 0 {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		return m.value(decoded)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		if form, err := url.ParseQuery(string(raw)); err == nil {
			out := make(map[string]any, len(form))
			for k, vals := range form {
				switch {
				case m.hidden(k):
					out[k] = "***"
				case len(vals) == 1:
					out[k] = vals[0]
				default:
					out[k] = vals
				}
			}
			return out
		}
	}

	if !utf8.Valid(raw) {
		return "<binary body omitted>"
	}
	if len(raw) > logBodyLimit {
		return string(raw[:logBodyLimit]) + "...(truncated)"
	}
	return string(raw)
}

// responseTap wraps the ResponseWriter to observe the status code, byte count
// and a bounded copy of the body without changing what the client receives.
type responseTap struct {
	http.ResponseWriter
	status  int
	written int
	copy    bytes.Buffer
	full    bool
	err     error
}

func (t *responseTap) WriteHeader(code int) {
	t.status = code
	t.ResponseWriter.WriteHeader(code)
}

func (t *responseTap) Write(p []byte) (int, error) {
	if t.status == 0 {
		t.status = http.StatusOK
	}

	if !t.full && len(p) > 0 {
		room := logBodyLimit - t.copy.Len()
		switch {
		case room <= 0:
			t.full = true
		case len(p) > room:
			t.copy.Write(p[:room])
			t.full = true
		default:
			t.copy.Write(p)
		}
	}

	n, err := t.ResponseWriter.Write(p)
	t.written += n
	return n, err
}

// SetError records the handler error for span reporting. The router calls it
// through an interface assertion after rendering the error response.
func (t *responseTap) SetError(err error) {
	t.err = err
}

func (t *responseTap) Flush() {
	if f, ok := t.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (t *responseTap) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := t.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

func (t *responseTap) Push(target string, opts *http.PushOptions) error {
	if p, ok := t.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}

// loggedBody renders the captured response copy the same way request bodies
// are rendered, flagging truncation when the copy filled up.
func (t *responseTap) loggedBody(m *masker) any {
	raw := t.copy.Bytes()

	var body any
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		body = m.value(decoded)
	} else if utf8.Valid(raw) {
		body = t.copy.String()
	} else if len(raw) > 0 {
		body = "<binary body omitted>"
	}

	if t.full {
		body = map[string]any{"body": body, "truncated": true}
	}
	return body
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// snapshotBody reads up to the log limit from the request body and stitches
// the consumed bytes back so the handler still sees the full stream.
func snapshotBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}

	peeked, _ := io.ReadAll(io.LimitReader(r.Body, logBodyLimit+1))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(peeked), r.Body))
	if len(peeked) > logBodyLimit {
		return peeked[:logBodyLimit]
	}
	return peeked
}

// middlewareObservability traces every request, records request count and
// latency metrics, and logs the masked request and response payloads.
func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	mask := newMasker(cfg)
	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")

	requests, err := meter.Int64Counter("http.server.requests", metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	latency, err := meter.Float64Histogram("http.server.duration", metric.WithDescription("HTTP request duration in milliseconds"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx, span := tracer.Start(
				r.Context(),
				r.Method+" "+route,
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
				),
			)
			defer span.End()

			reqBody := snapshotBody(r)
			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"headers", mask.headers(r.Header),
				"body", mask.body(r.Header.Get("Content-Type"), reqBody),
			)

			tap := &responseTap{ResponseWriter: w}
			next.ServeHTTP(tap, r.WithContext(ctx))

			status := tap.status
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(status),
			}

			if tap.err != nil {
				span.RecordError(tap.err)
			}
			switch {
			case status >= 500 && tap.err != nil:
				span.SetStatus(codes.Error, tap.err.Error())
			case status >= 500:
				span.SetStatus(codes.Error, http.StatusText(status))
			default:
				span.SetStatus(codes.Ok, "")
			}

			span.SetAttributes(attrs...)
			span.SetAttributes(
				semconv.NetworkProtocolVersionKey.String(r.Proto),
				semconv.ServerAddressKey.String(r.Host),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
				attribute.Int("http.response_content_length", tap.written),
			)

			if requests != nil {
				requests.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if latency != nil {
				latency.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs...))
			}

			slog.InfoContext(ctx, "response sent",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"status", status,
				"bytes", tap.written,
				"latency_ms", time.Since(start).Milliseconds(),
				"body", tap.loggedBody(mask),
			)
		})
	}
}
