package reqctx

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const (
	keyRequestMeta ctxKey = iota
)

// RequestMeta holds metadata for one command invocation.
type RequestMeta struct {
	// RequestID is a unique identifier shared by every API call of the
	// invocation. Format: UUID v4 string.
	RequestID string

	// Command is the command path that started the invocation, e.g. "doctors list".
	Command string

	// StartedAt is when the invocation began.
	StartedAt time.Time
}

// NewRequestMeta creates metadata with a fresh request ID.
func NewRequestMeta(command string) *RequestMeta {
	return &RequestMeta{
		RequestID: uuid.NewString(),
		Command:   command,
		StartedAt: time.Now(),
	}
}

// WithRequestMeta stores RequestMeta in the context.
func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, keyRequestMeta, meta)
}

// RequestMetaFromContext retrieves RequestMeta from the context.
// Returns nil, false if not set.
func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	v := ctx.Value(keyRequestMeta)
	if v == nil {
		return nil, false
	}
	meta, ok := v.(*RequestMeta)
	return meta, ok
}

// RequestIDFromContext is a convenience function to get just the request ID.
// Returns empty string if RequestMeta is not set.
func RequestIDFromContext(ctx context.Context) string {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok || meta == nil {
		return ""
	}
	return meta.RequestID
}
