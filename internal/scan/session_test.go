package scan

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockscan/internal/dto"
	apperrors "stockscan/internal/errors"
)

const (
	codeA = "1111111111111"
	codeB = "2222222222222"
)

type mockLooker struct {
	LookupFunc func(ctx context.Context, barcode string) (*dto.StockResponse, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockLooker) Lookup(ctx context.Context, barcode string) (*dto.StockResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, barcode)
	m.mu.Unlock()
	return m.LookupFunc(ctx, barcode)
}

type mockNotifier struct {
	notified int
	closed   bool
}

func (m *mockNotifier) Notify() error {
	m.notified++
	return nil
}

func (m *mockNotifier) Close() error {
	m.closed = true
	return nil
}

type counter struct {
	n int
}

func (c *counter) Inc() { c.n++ }

func TestSession_Scan_Success(t *testing.T) {
	looker := &mockLooker{
		LookupFunc: func(ctx context.Context, barcode string) (*dto.StockResponse, error) {
			return &dto.StockResponse{Barcode: barcode, Product: "P100", Stock: 42}, nil
		},
	}
	notifier := &mockNotifier{}
	s := NewSession(looker, notifier, nil, zap.NewNop())

	view, err := s.Scan(context.Background(), " "+codeA+"\n")

	require.NoError(t, err)
	assert.Equal(t, StatusScanned, view.Status)
	assert.Equal(t, codeA, view.Barcode)
	assert.Equal(t, "P100", view.Stock.Product)
	assert.Equal(t, view, s.Current())
	assert.Equal(t, 1, notifier.notified)
}

func TestSession_Scan_RejectsWrongLength(t *testing.T) {
	looker := &mockLooker{}
	notifier := &mockNotifier{}
	s := NewSession(looker, notifier, nil, zap.NewNop())

	for _, code := range []string{"", "123", "12345678901234"} {
		view, err := s.Scan(context.Background(), code)

		ve, ok := apperrors.IsValidationError(err)
		require.True(t, ok, code)
		assert.Equal(t, "Barcode must be exactly 13 characters.", ve.Message)
		assert.Equal(t, StatusError, view.Status)
	}

	assert.Empty(t, looker.calls)
	assert.Zero(t, notifier.notified)
}

func TestSession_Scan_LookupError(t *testing.T) {
	lookupErr := &APIError{Status: 404, Message: "No SAP product matches the scanned barcode."}
	looker := &mockLooker{
		LookupFunc: func(ctx context.Context, barcode string) (*dto.StockResponse, error) {
			return nil, lookupErr
		},
	}
	notifier := &mockNotifier{}
	s := NewSession(looker, notifier, nil, zap.NewNop())

	view, err := s.Scan(context.Background(), codeA)

	assert.ErrorIs(t, err, lookupErr)
	assert.Equal(t, StatusError, view.Status)
	assert.Nil(t, view.Stock)
	assert.Zero(t, notifier.notified)
}

func TestSession_Scan_LastWriteWins(t *testing.T) {
	release := map[string]chan struct{}{
		codeA: make(chan struct{}),
		codeB: make(chan struct{}),
	}
	started := make(chan string, 2)
	looker := &mockLooker{
		LookupFunc: func(ctx context.Context, barcode string) (*dto.StockResponse, error) {
			started <- barcode
			<-release[barcode]
			return &dto.StockResponse{Barcode: barcode, Product: "P-" + barcode}, nil
		},
	}
	notifier := &mockNotifier{}
	stale := &counter{}
	s := NewSession(looker, notifier, stale, zap.NewNop())

	errA := make(chan error, 1)
	go func() {
		_, err := s.Scan(context.Background(), codeA)
		errA <- err
	}()
	require.Equal(t, codeA, <-started)

	errB := make(chan error, 1)
	go func() {
		_, err := s.Scan(context.Background(), codeB)
		errB <- err
	}()
	require.Equal(t, codeB, <-started)

	// B resolves first, then A.
	close(release[codeB])
	require.NoError(t, <-errB)
	close(release[codeA])
	assert.ErrorIs(t, <-errA, ErrStale)

	view := s.Current()
	assert.Equal(t, StatusScanned, view.Status)
	assert.Equal(t, codeB, view.Barcode)
	assert.Equal(t, "P-"+codeB, view.Stock.Product)
	assert.Equal(t, 1, stale.n)
	assert.Equal(t, 1, notifier.notified)
}

func TestSession_Scan_StaleErrorIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	looker := &mockLooker{
		LookupFunc: func(ctx context.Context, barcode string) (*dto.StockResponse, error) {
			if barcode == codeA {
				close(started)
				<-release
				return nil, errors.New("connection reset")
			}
			return &dto.StockResponse{Barcode: barcode}, nil
		},
	}
	s := NewSession(looker, nil, nil, zap.NewNop())

	errA := make(chan error, 1)
	go func() {
		_, err := s.Scan(context.Background(), codeA)
		errA <- err
	}()
	<-started

	_, err := s.Scan(context.Background(), codeB)
	require.NoError(t, err)
	close(release)

	assert.ErrorIs(t, <-errA, ErrStale)
	assert.Equal(t, StatusScanned, s.Current().Status)
	assert.Nil(t, s.Current().Err)
}

func TestSession_Reset_InvalidatesInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	looker := &mockLooker{
		LookupFunc: func(ctx context.Context, barcode string) (*dto.StockResponse, error) {
			close(started)
			<-release
			return &dto.StockResponse{Barcode: barcode}, nil
		},
	}
	s := NewSession(looker, nil, nil, zap.NewNop())

	errA := make(chan error, 1)
	go func() {
		_, err := s.Scan(context.Background(), codeA)
		errA <- err
	}()
	<-started

	s.Reset()
	close(release)

	assert.ErrorIs(t, <-errA, ErrStale)
	assert.Equal(t, View{Status: StatusIdle}, s.Current())
}

func TestSession_Close_ReleasesNotifier(t *testing.T) {
	notifier := &mockNotifier{}
	s := NewSession(&mockLooker{}, notifier, nil, zap.NewNop())

	require.NoError(t, s.Close())
	assert.True(t, notifier.closed)
}

func TestBellNotifier(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBellNotifier(&buf)

	require.NoError(t, bell.Notify())
	assert.Equal(t, "\a", buf.String())

	require.NoError(t, bell.Close())
	assert.ErrorIs(t, bell.Notify(), ErrNotifierClosed)
	assert.Equal(t, "\a", buf.String())
}
