package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by request and backend logs.
const (
	FieldBackend       = "backend"
	FieldModel         = "model"
	FieldTask          = "task"
	FieldErrorKind     = "error_kind"
	FieldCorrelationID = "correlation_id"
)

// BackendFields describes the active backend. Empty values are omitted.
func BackendFields(backend, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if v := strings.TrimSpace(backend); v != "" {
		fields = append(fields, zap.String(FieldBackend, v))
	}
	if v := strings.TrimSpace(model); v != "" {
		fields = append(fields, zap.String(FieldModel, v))
	}
	return fields
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
