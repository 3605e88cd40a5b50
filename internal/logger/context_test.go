package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestFromContext_Fallback ensures a bare context yields the global logger.
func TestFromContext_Fallback(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestToContext_Roundtrip ensures a logger stored in a context is returned
// unchanged.
func TestToContext_Roundtrip(t *testing.T) {
	t.Parallel()

	l := zap.NewNop().Sugar()
	ctx := ToContext(context.Background(), l)

	require.Same(t, l, FromContext(ctx))
}

// TestWithName derives a scoped logger without touching the parent context.
func TestWithName(t *testing.T) {
	t.Parallel()

	parent := context.Background()
	named := WithName(parent, "reconciler")

	require.NotSame(t, FromContext(parent), FromContext(named))
}
