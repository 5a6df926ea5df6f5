package reqctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestMetaRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestMetaFromContext(ctx); ok {
		t.Fatal("expected no meta on empty context")
	}
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}

	meta := NewRequestMeta("doctors list")
	ctx = WithRequestMeta(ctx, meta)

	got, ok := RequestMetaFromContext(ctx)
	if !ok || got != meta {
		t.Fatal("expected stored meta")
	}
	if got.Command != "doctors list" {
		t.Errorf("unexpected command %q", got.Command)
	}
	if _, err := uuid.Parse(RequestIDFromContext(ctx)); err != nil {
		t.Errorf("request id is not a uuid: %v", err)
	}
}
