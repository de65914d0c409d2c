package scan

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"stockscan/internal/dto"
	apperrors "stockscan/internal/errors"
)

// BarcodeLength is the only code length the scanning flow submits.
const BarcodeLength = 13

// ErrStale is returned to a caller whose scan was superseded by a newer one.
// Its result was dropped, not aborted.
var ErrStale = errors.New("scan superseded by a newer scan")

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusScanned Status = "scanned"
	StatusError   Status = "error"
)

// View is what the operator sees: the outcome of the most recent scan.
type View struct {
	Status  Status
	Barcode string
	Stock   *dto.StockResponse
	Err     error
}

type Looker interface {
	Lookup(ctx context.Context, barcode string) (*dto.StockResponse, error)
}

// StaleCounter is satisfied by a prometheus.Counter.
type StaleCounter interface {
	Inc()
}

// Ticket identifies one submitted scan. Only the ticket issued last may
// commit to the view.
type Ticket uint64

type Session struct {
	looker   Looker
	notifier Notifier
	stale    StaleCounter
	logger   *zap.Logger

	generation atomic.Uint64

	mu   sync.Mutex
	view View
}

// NewSession takes ownership of notifier; Close releases it. stale may be nil.
func NewSession(looker Looker, notifier Notifier, stale StaleCounter, logger *zap.Logger) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Session{
		looker:   looker,
		notifier: notifier,
		stale:    stale,
		logger:   logger,
		view:     View{Status: StatusIdle},
	}
}

// Scan looks up one code. Calls may overlap: whichever scan was submitted
// last owns the view, and earlier ones get ErrStale once they resolve.
func (s *Session) Scan(ctx context.Context, code string) (View, error) {
	code = strings.TrimSpace(code)
	if len(code) != BarcodeLength {
		err := apperrors.NewValidationError("Barcode must be exactly 13 characters.", apperrors.ValidationDetail{
			Field:   "barcode",
			Message: "length must be 13",
		})
		view := View{Status: StatusError, Barcode: code, Err: err}
		s.mu.Lock()
		s.view = view
		s.mu.Unlock()
		return view, err
	}

	ticket := s.next()
	s.mu.Lock()
	if s.current(ticket) {
		s.view = View{Status: StatusLoading, Barcode: code}
	}
	s.mu.Unlock()

	stock, err := s.looker.Lookup(ctx, code)

	s.mu.Lock()
	if !s.current(ticket) {
		s.mu.Unlock()
		if s.stale != nil {
			s.stale.Inc()
		}
		s.logger.Debug("discarding stale scan", zap.String("barcode", code), zap.Uint64("ticket", uint64(ticket)))
		return View{}, ErrStale
	}
	if err != nil {
		view := View{Status: StatusError, Barcode: code, Err: err}
		s.view = view
		s.mu.Unlock()
		return view, err
	}
	s.view = View{Status: StatusScanned, Barcode: code, Stock: stock}
	view := s.view
	s.mu.Unlock()

	if err := s.notifier.Notify(); err != nil {
		s.logger.Debug("scan confirmation failed", zap.Error(err))
	}
	return view, nil
}

// Reset invalidates every scan in flight and clears the view.
func (s *Session) Reset() {
	s.next()
	s.mu.Lock()
	s.view = View{Status: StatusIdle}
	s.mu.Unlock()
}

func (s *Session) Current() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) Close() error {
	s.Reset()
	return s.notifier.Close()
}

func (s *Session) next() Ticket {
	return Ticket(s.generation.Add(1))
}

// current must be called with mu held so no newer commit can interleave.
func (s *Session) current(t Ticket) bool {
	return Ticket(s.generation.Load()) == t
}
