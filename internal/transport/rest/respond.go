// Package rest exposes the revision workflow over HTTP with a uniform
// JSON result envelope.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// response is the uniform result envelope every endpoint answers with.
type response struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, response{Status: "success", Data: data})
}

func writeFailure(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, response{Status: "fail", Error: &errorBody{Kind: kind, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeDomainError maps a service error onto the envelope and an HTTP
// status code.
func writeDomainError(w http.ResponseWriter, log *slog.Logger, err error) {
	// ErrEventDispatch is checked first: it can wrap the causing store
	// error, and the caller must learn the stage write stayed durable.
	switch {
	case errors.Is(err, domain.ErrEventDispatch):
		writeFailure(w, http.StatusBadGateway, "EVENT_DISPATCH", err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeFailure(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeFailure(w, http.StatusConflict, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, domain.ErrEmptyAggregate):
		writeFailure(w, http.StatusNotFound, "EMPTY_AGGREGATE", err.Error())
	case errors.Is(err, domain.ErrWriteFailed):
		writeFailure(w, http.StatusInternalServerError, "WRITE_FAILED", err.Error())
	case errors.Is(err, domain.ErrUpstream):
		writeFailure(w, http.StatusBadGateway, "UPSTREAM", err.Error())
	default:
		log.Error("unhandled service error", slog.String("error", err.Error()))
		writeFailure(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
