package scan

import (
	"errors"
	"io"
	"sync"
)

var ErrNotifierClosed = errors.New("notifier closed")

// Notifier confirms a successful scan to the operator.
type Notifier interface {
	Notify() error
	Close() error
}

// BellNotifier rings the terminal bell on w.
type BellNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

func NewBellNotifier(w io.Writer) *BellNotifier {
	return &BellNotifier{w: w}
}

func (b *BellNotifier) Notify() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrNotifierClosed
	}
	_, err := io.WriteString(b.w, "\a")
	return err
}

func (b *BellNotifier) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

type NopNotifier struct{}

func (NopNotifier) Notify() error { return nil }

func (NopNotifier) Close() error { return nil }
