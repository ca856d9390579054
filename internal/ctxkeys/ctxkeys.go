// Package ctxkeys holds the context keys shared across the pipeline.
package ctxkeys

import (
	"context"

	"github.com/google/uuid"
)

// contextKey 用于在 context 中存储值的键类型
type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID 设置 RequestID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID 获取 RequestID
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// EnsureRequestID returns ctx unchanged when it already carries a request
// ID, otherwise a child context with a fresh one.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := RequestID(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}
