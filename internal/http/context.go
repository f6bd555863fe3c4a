package http

import (
	"context"
	"log/slog"

	"github.com/example/client-scheduler/internal/logging"
)

type contextKey string

const (
	appointmentIDContextKey contextKey = "appointment_id"
	customerIDContextKey    contextKey = "customer_id"
	countryIDContextKey     contextKey = "country_id"
)

// ContextWithAppointmentID injects the appointment identifier resolved from
// the request path.
func ContextWithAppointmentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, appointmentIDContextKey, id)
}

// AppointmentIDFromContext extracts an appointment identifier previously
// associated with the context.
func AppointmentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(appointmentIDContextKey).(string)
	return id, ok
}

// ContextWithCustomerID injects the customer identifier resolved from the
// request path.
func ContextWithCustomerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, customerIDContextKey, id)
}

// CustomerIDFromContext extracts a customer identifier previously associated
// with the context.
func CustomerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerIDContextKey).(string)
	return id, ok
}

// ContextWithCountryID injects the country identifier resolved from the
// request path.
func ContextWithCountryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, countryIDContextKey, id)
}

// CountryIDFromContext extracts a country identifier previously associated
// with the context.
func CountryIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(countryIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts a logger previously attached to the context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
