package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTraceIDFromContext_Found(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDCtxKey, "trace-123")

	traceID, ok := GetTraceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "trace-123", traceID)
}

func TestGetTraceIDFromContext_Missing(t *testing.T) {
	_, ok := GetTraceIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetTraceIDFromContext_WrongType(t *testing.T) {
	// значение не того типа — должен вернуться ok == false
	ctx := context.WithValue(context.Background(), TraceIDCtxKey, 42)

	_, ok := GetTraceIDFromContext(ctx)
	assert.False(t, ok)
}
