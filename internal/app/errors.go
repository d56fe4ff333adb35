package app

import (
	"context"
	"errors"
)

// Boundary error kinds. Every operation failure is converted into an
// envelope result; these sentinels classify the failure for callers and
// tests that need more than the message string.
var (
	// ErrMalformedRequest marks input that could not be deserialized.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrValidation marks input that deserialized but fails preconditions.
	ErrValidation = errors.New("validation failed")
)

// Error log categories, kept compatible with the upstream ERP's labels.
const (
	categoryInvoiceAPI    = "Purchase Invoice API Error"
	categoryReceiptDetail = "PR Detail Fetch Error"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// ContextWithRequestID stores the transport request ID so failures can be
// correlated in the error log.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID from ctx, or empty string.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
