package commons

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-1")
	assert.Equal(t, "trace-1", TraceID(ctx))
}

func TestTraceID_GeneratesWhenMissing(t *testing.T) {
	id := TraceID(context.Background())

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, TraceID(context.Background()))
}
