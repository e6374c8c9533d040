// AngelaMos | 2026
// response_test.go

package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONError_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"app error", InvalidInput("price must be a number"), http.StatusBadRequest, "price must be a number"},
		{"wrapped not found", fmt.Errorf("get package: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", ConflictError("Website profile already exists. Use PUT to update."), http.StatusConflict, "Use PUT"},
		{"duplicate", fmt.Errorf("create user: %w", ErrDuplicateKey), http.StatusConflict, "DUPLICATE"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSONError(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil), tc.err)

			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.body)
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Wedding package created successfully", int64(9))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Wedding package created successfully", body.Message)
	assert.EqualValues(t, 9, body.ID)
}

func TestInternalServerError_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := httptest.NewRequest(http.MethodDelete, "/api/orders?id=3", nil)
	r = r.WithContext(WithRequestID(r.Context(), "req-500"))

	rec := httptest.NewRecorder()
	JSONError(rec, r, errors.New("connection reset"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "internal server error", entry["msg"])
	assert.Equal(t, "req-500", entry["request_id"])
	assert.Equal(t, "/api/orders", entry["path"])
	assert.Equal(t, "connection reset", entry["error"])
}
