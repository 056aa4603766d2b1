package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// EvaluationIDKey is the context key for evaluation IDs.
	EvaluationIDKey contextKey = "evaluation_id"

	// EntityKeyKey is the context key for entity keys.
	EntityKeyKey contextKey = "entity_key"

	// RealmKey is the context key for realm labels.
	RealmKey contextKey = "realm"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"

	// SpanIDKey is the context key for span IDs.
	SpanIDKey contextKey = "span_id"
)

// WithEvaluationID adds an evaluation ID to the context.
func WithEvaluationID(ctx context.Context, evaluationID string) context.Context {
	return context.WithValue(ctx, EvaluationIDKey, evaluationID)
}

// GetEvaluationID retrieves the evaluation ID from the context.
func GetEvaluationID(ctx context.Context) string {
	if evaluationID, ok := ctx.Value(EvaluationIDKey).(string); ok {
		return evaluationID
	}
	return ""
}

// WithEntityKey adds an entity key to the context.
func WithEntityKey(ctx context.Context, entityKey string) context.Context {
	return context.WithValue(ctx, EntityKeyKey, entityKey)
}

// GetEntityKey retrieves the entity key from the context.
func GetEntityKey(ctx context.Context) string {
	if entityKey, ok := ctx.Value(EntityKeyKey).(string); ok {
		return entityKey
	}
	return ""
}

// WithRealm adds a realm label to the context.
func WithRealm(ctx context.Context, realm string) context.Context {
	return context.WithValue(ctx, RealmKey, realm)
}

// GetRealm retrieves the realm label from the context.
func GetRealm(ctx context.Context) string {
	if realm, ok := ctx.Value(RealmKey).(string); ok {
		return realm
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// WithSpanID adds a span ID to the context.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, SpanIDKey, spanID)
}

// GetSpanID retrieves the span ID from the context.
func GetSpanID(ctx context.Context) string {
	if spanID, ok := ctx.Value(SpanIDKey).(string); ok {
		return spanID
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if evaluationID := GetEvaluationID(ctx); evaluationID != "" {
		fields = append(fields, "evaluation_id", evaluationID)
	}

	// Entity key is hashed by the logger when hashing is enabled.
	if entityKey := GetEntityKey(ctx); entityKey != "" {
		fields = append(fields, "entity_key", entityKey)
	}

	if realm := GetRealm(ctx); realm != "" {
		fields = append(fields, "realm", realm)
	}

	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}

	if spanID := GetSpanID(ctx); spanID != "" {
		fields = append(fields, "span_id", spanID)
	}

	return fields
}

// ContextLogger is a logger that automatically includes context fields.
type ContextLogger struct {
	logger *Logger
	ctx    context.Context
}

// NewContextLogger creates a logger that automatically includes context fields.
func NewContextLogger(logger *Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{
		logger: logger.WithContext(ctx),
		ctx:    ctx,
	}
}

// Debug logs a debug message with context fields.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.logger.Debug(msg, args...)
}

// Info logs an info message with context fields.
func (cl *ContextLogger) Info(msg string, args ...any) {
	cl.logger.Info(msg, args...)
}

// Warn logs a warning message with context fields.
func (cl *ContextLogger) Warn(msg string, args ...any) {
	cl.logger.Warn(msg, args...)
}

// Error logs an error message with context fields.
func (cl *ContextLogger) Error(msg string, args ...any) {
	cl.logger.Error(msg, args...)
}

// With creates a new ContextLogger with additional fields.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{
		logger: cl.logger.With(args...),
		ctx:    cl.ctx,
	}
}
