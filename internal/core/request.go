// AngelaMos | 2026
// request.go

package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const defaultMultipartMemory = 32 << 20

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// FormValues reads a multipart, urlencoded or JSON body into url.Values so
// handlers read fields the same way whatever the client sent. JSON numbers
// and booleans are rendered as their literal text.
func FormValues(r *http.Request) (url.Values, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/json":
		return jsonValues(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(defaultMultipartMemory); err != nil {
			return nil, invalidBody(err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, invalidBody(err)
		}
	}

	return r.Form, nil
}

func jsonValues(r *http.Request) (url.Values, error) {
	var body map[string]any

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, invalidBody(err)
	}

	vals := make(url.Values, len(body))
	for key, raw := range body {
		switch v := raw.(type) {
		case nil:
			continue
		case string:
			vals.Set(key, v)
		case json.Number:
			vals.Set(key, v.String())
		case bool:
			vals.Set(key, strconv.FormatBool(v))
		default:
			return nil, InvalidInput(key + " must be a scalar value")
		}
	}

	return vals, nil
}

func invalidBody(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return InvalidInput(
			fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit),
		)
	}
	return InvalidInput("invalid request body")
}

func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, InvalidInput("id is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, InvalidInput("id must be a positive integer")
	}

	return id, nil
}

func URLParamID(r *http.Request, key string) (int64, error) {
	return ParseID(chi.URLParam(r, key))
}

func QueryID(r *http.Request) (int64, error) {
	return ParseID(r.URL.Query().Get("id"))
}

// FirstValue returns the first non-empty value among keys, trimmed. Lets a
// form field be read under its current name or a legacy alias.
func FirstValue(vals url.Values, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(vals.Get(key)); v != "" {
			return v
		}
	}
	return ""
}
