package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/client-scheduler/internal/application"
)

var (
	errBadRequestBody        = errors.New("invalid request body")
	errInvalidAppointmentID  = errors.New("invalid appointment id")
	errInvalidCustomerID     = errors.New("invalid customer id")
	errInvalidCountryID      = errors.New("invalid country id")
	errMissingContactID      = errors.New("contact_id query parameter is required")
	errInvalidMonth          = errors.New("month query parameter must name a month")
	errMissingTypeParam      = errors.New("type query parameter is required")
	errInvalidDateParam      = errors.New("date query parameter must use the 2006-01-02 format")
	errInvalidFilterParam    = errors.New("filter query parameter must be all, month, or week")
	errMissingDeleteDecision = errors.New("deletion confirmation answers are required")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps application errors to HTTP responses. Validation
// reasons are surfaced verbatim because they are the exact messages the form
// shows; persistence failures collapse to a generic message.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Message: "Invalid Username and / or Password"})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "The requested resource was not found."})
	default:
		var validationErr *application.ValidationError
		if errors.As(err, &validationErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: validationErr.Reason,
				Field:   validationErr.Field,
			})
			return
		}

		var cascadeErr *application.PartialCascadeError
		if errors.As(err, &cascadeErr) {
			r.loggerFor(ctx).ErrorContext(ctx, "cascading delete left dependents behind",
				"customer_id", cascadeErr.CustomerID, "failed_ids", cascadeErr.FailedIDs)
			r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
				Message:   "Some appointments could not be deleted; the customer was kept.",
				FailedIDs: cascadeErr.FailedIDs,
			})
			return
		}

		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "An internal error occurred."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

type errorResponse struct {
	Message   string   `json:"message"`
	Field     string   `json:"field,omitempty"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}
