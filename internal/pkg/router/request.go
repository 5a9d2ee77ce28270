package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetParamInt64(key string) (int64, error) {
	value, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("param must integer value")
	}
	return value, nil
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// queryInt parses an optional integer query parameter. Absent parameters read
// as zero so handlers can apply defaults.
func (r *Request) queryInt(key string, bitSize int) (int64, error) {
	raw := r.GetQuery(key)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseInt(raw, 10, bitSize)
	if err != nil {
		return 0, goerror.NewInvalidFormat()
	}
	return value, nil
}

func (r *Request) GetQueryInt16(key string) (int16, error) {
	value, err := r.queryInt(key, 16)
	return int16(value), err
}

func (r *Request) GetQueryInt32(key string) (int32, error) {
	value, err := r.queryInt(key, 32)
	return int32(value), err
}

func (r *Request) GetQueryInt64(key string) (int64, error) {
	return r.queryInt(key, 64)
}

func (r *Request) GetQueryDate(key, format string) (time.Time, error) {
	raw := r.GetQuery(key)
	if raw == "" {
		return time.Time{}, nil
	}

	value, err := time.Parse(format, raw)
	if err != nil {
		return time.Time{}, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return value, nil
}

// DecodeBody decodes the JSON body into dst. Unknown fields and trailing
// payloads are rejected.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return goerror.NewInvalidFormat()
	}
	return nil
}

// StreamSingleFile returns the first multipart file matching the form field
// name, together with the client-reported filename. Earlier parts are drained
// so the stream position is correct when the caller reads.
func (r *Request) StreamSingleFile(name string) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, "", goerror.NewInvalidFormat("Invalid request content-type")
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", goerror.NewInvalidFormat()
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", goerror.NewInvalidFormat()
		}

		if part.FormName() == name {
			return part, part.FileName(), nil
		}

		if _, errCopy := io.Copy(io.Discard, part); errCopy != nil {
			part.Close()
			return nil, "", goerror.NewInvalidFormat(errCopy.Error())
		}
		if err := part.Close(); err != nil {
			return nil, "", goerror.NewInvalidFormat(err.Error())
		}
	}

	return nil, "", goerror.NewInvalidFormat()
}
