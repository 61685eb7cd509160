package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

// Fixed response messages per error class. Clients key UI behavior off these
// strings, so they never carry request-specific detail; that goes in details.
const (
	msgInvalidRequest      = "Invalid request"
	msgInvalidCredentials  = "Invalid credentials"
	msgAccessDenied        = "Access denied"
	msgNotFound            = "Not found"
	msgRateLimitExceeded   = "Rate limit exceeded"
	msgUpstreamUnavailable = "Upstream unavailable"
	msgInternalError       = "Internal server error"
)

type responseEnvelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Meta      *meta  `json:"meta,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
}

// meta is the envelope's response metadata. Count is a pointer so list
// endpoints can report zero without scalar endpoints emitting it.
type meta struct {
	Count    *int   `json:"count,omitempty"`
	LeagueID int64  `json:"league_id,omitempty"`
	Season   int    `json:"season,omitempty"`
	Week     int    `json:"week,omitempty"`
	Position string `json:"position,omitempty"`
}

func (m *meta) withCount(n int) *meta {
	if m == nil {
		m = &meta{}
	}
	m.Count = &n
	return m
}

type mappedError struct {
	HTTPStatus int
	Code       string
	Message    string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any, m *meta) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, responseEnvelope{
		Success:   true,
		Data:      data,
		Meta:      m,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, responseEnvelope{
		Success:   false,
		Error:     mapped.Code,
		Message:   mapped.Message,
		Details:   err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, responseEnvelope{
		Success:   false,
		Error:     "INTERNAL",
		Message:   msgInternalError,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{http.StatusBadRequest, "INVALID_ARGUMENT", msgInvalidRequest}
	case errors.Is(err, usecase.ErrAuthFailed):
		return mappedError{http.StatusUnauthorized, "UNAUTHENTICATED", msgInvalidCredentials}
	case errors.Is(err, usecase.ErrAccessDenied):
		return mappedError{http.StatusForbidden, "PERMISSION_DENIED", msgAccessDenied}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{http.StatusNotFound, "NOT_FOUND", msgNotFound}
	case errors.Is(err, usecase.ErrRateLimited):
		return mappedError{http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", msgRateLimitExceeded}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{http.StatusServiceUnavailable, "UNAVAILABLE", msgUpstreamUnavailable}
	default:
		return mappedError{http.StatusInternalServerError, "INTERNAL", msgInternalError}
	}
}
