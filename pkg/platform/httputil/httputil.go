// Package httputil holds the shared JSON response helpers for the HTTP layer.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"supportdir/pkg/derrors"
)

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON encodes v with the given status. Encoding failures are logged and
// swallowed: the status line has already gone out.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response", "error", err)
	}
}

// WriteError maps a domain error onto an HTTP status and a stable error code.
// Internal and transient failures omit the description so store details never
// leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	category := derrors.CategoryOf(err)

	status, code := http.StatusInternalServerError, "internal_error"
	switch category {
	case derrors.CategoryValidation:
		status, code = http.StatusBadRequest, "invalid_request"
	case derrors.CategoryNotFound:
		status, code = http.StatusNotFound, "not_found"
	case derrors.CategoryConcurrency:
		status, code = http.StatusConflict, "conflict"
	case derrors.CategoryTransient:
		status, code = http.StatusServiceUnavailable, "unavailable"
	}

	body := errorBody{Error: code}
	if status == http.StatusBadRequest || status == http.StatusNotFound || status == http.StatusConflict {
		var derr *derrors.DomainError
		if errors.As(err, &derr) {
			body.Description = derr.Message
		}
	}
	WriteJSON(w, status, body)
}

// Decode reads a JSON request body into T, returning a validation error on
// malformed input.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, derrors.New(derrors.CategoryValidation, "http.decode", "malformed request body", err)
	}
	return v, nil
}
