// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type DataResponse struct {
	Data any `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      any    `json:"id,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, DataResponse{Data: data})
}

func Created(w http.ResponseWriter, message string, id any) {
	JSON(w, http.StatusCreated, MessageResponse{Message: message, ID: id})
}

func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, MessageResponse{Message: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	writeAppError(w, InvalidInput(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	writeAppError(w, NotFoundError(resource))
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeAppError(w, UnauthorizedError(message))
}

// InternalServerError logs err with the request it failed and writes a
// generic 500. The cause never reaches the client.
func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	slog.ErrorContext(ctx, "internal server error",
		"request_id", RequestIDFromContext(ctx),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Message: "internal server error",
		Code:    "INTERNAL_ERROR",
	})
}

// JSONError writes err using its AppError status and message. Bare
// sentinels map to their canonical status; anything else is a 500.
func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := AsAppError(err); ok {
		writeAppError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		writeAppError(w, InvalidInput("invalid input"))
	case errors.Is(err, ErrNotFound):
		writeAppError(w, NotFoundError("resource"))
	case errors.Is(err, ErrUnauthorized):
		writeAppError(w, UnauthorizedError(""))
	case errors.Is(err, ErrForbidden):
		writeAppError(w, ForbiddenError(""))
	case errors.Is(err, ErrConflict):
		writeAppError(w, ConflictError("conflict"))
	case errors.Is(err, ErrDuplicateKey):
		writeAppError(w, DuplicateError("resource"))
	default:
		InternalServerError(w, r, err)
	}
}

func writeAppError(w http.ResponseWriter, appErr *AppError) {
	JSON(w, appErr.StatusCode, ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
	})
}
