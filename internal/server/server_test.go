package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServer_StartAndShutdown(t *testing.T) {
	srv := New(0, http.NotFoundHandler(), zap.NewNop())
	assert.Equal(t, ":0", srv.httpServer.Addr)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown may win the race with ListenAndServe; Start must still
	// return cleanly.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("server did not stop")
	}
}
