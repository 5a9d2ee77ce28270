// Package router wraps httprouter with the application's handler signature,
// middleware chain and JSON envelope rendering.
package router

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/uid"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

// Handler is the application handler signature. The returned payload is JSON
// encoded into the success envelope; a returned error is rendered through the
// error envelope instead.
type Handler func(r *Request) (any, error)

// Config holds dependencies required to build a Router.
type Config struct {
	// Config provides runtime configuration values.
	Config config.Config
	// UUID generates request correlation IDs.
	UUID uid.StringID
	// JWT validates and parses authentication tokens.
	JWT jwt.JWT
	// Instrument provides tracing and metrics helpers.
	Instrument instrument.Instrumentation
}

type successEnvelope struct {
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error,omitempty"`
}

// Router is an http.Handler combining httprouter with the middleware chain.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

// publicEndpoints lists the routes the authentication middleware lets through
// without a token. Everything identity needs before a login succeeds is here.
var publicEndpoints = map[string]map[string]struct{}{
	http.MethodGet: {
		"/":       {},
		"/health": {},
	},
	http.MethodPost: {
		"/api/v1/identity/login":               {},
		"/api/v1/identity/password/otp":        {},
		"/api/v1/identity/password/otp/resend": {},
		"/api/v1/identity/password/otp/verify": {},
		"/api/v1/identity/password/reset":      {},
	},
}

// NewRouter builds the application router with the standard middleware chain.
func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]string{"message": "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]string{"message": "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	hr.GET("/", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, map[string]string{"message": "Welcome to Upasthit API"}, http.StatusOK)
	})

	return &Router{
		hr: hr,
		mws: []Middleware{
			middlewareRecoverer,
			middlewareIP,
			middlewareCorrelationID(cfg.UUID),
			middlewareObservability(cfg.Config, cfg.Instrument),
			middlewareMaintenance(cfg.Config),
			middlewareAuthentication(cfg.JWT, publicEndpoints),
		},
	}
}

// GET registers a GET endpoint using the application Handler signature.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

// GETRaw registers a GET endpoint that writes directly to the response writer.
func (r *Router) GETRaw(path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(http.MethodGet, path, Chain(h, append(r.mws, mws...)...))
}

// POST registers a POST endpoint using the application Handler signature.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPost, path, h, mws...)
}

// PUT registers a PUT endpoint using the application Handler signature.
func (r *Router) PUT(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPut, path, h, mws...)
}

// PATCH registers a PATCH endpoint using the application Handler signature.
func (r *Router) PATCH(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPatch, path, h, mws...)
}

// DELETE registers a DELETE endpoint using the application Handler signature.
func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodDelete, path, h, mws...)
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req})
		if err != nil {
			if tap, ok := w.(interface{ SetError(error) }); ok {
				tap.SetError(err)
			}
			renderError(w, err)
			return
		}
		renderSuccess(w, resp)
	}), append(r.mws, mws...)...))
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

// renderError maps a handler error onto the error envelope. Anything that is
// not a goerror.Error renders as a plain 500.
func renderError(w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		writeJSON(w, errorEnvelope{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	env := errorEnvelope{Message: gerr.Msg()}

	var verr validator.V10ValidationError
	if errors.As(err, &verr) {
		env.Error = verr.Values()
	} else if len(gerr.Fields()) > 0 {
		env.Error = gerr.Fields()
	}

	writeJSON(w, env, gerr.StatusCode())
}

// renderSuccess wraps the payload into the success envelope. Payloads may
// customize the status code, message and meta block through duck-typed
// methods; a nil payload renders as 204.
func renderSuccess(w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}

	if code == http.StatusNoContent || resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg := "request has been successfully"
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	var meta map[string]any
	if m, ok := resp.(interface{ Meta() map[string]any }); ok {
		meta = m.Meta()
	}

	writeJSON(w, successEnvelope{Message: msg, Data: resp, Meta: meta}, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		slog.Error("server: failed to encode data to json", "error", err)
	}
}
