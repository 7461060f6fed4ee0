package mail

import (
	"context"
	"errors"

	"go.uber.org/atomic"
)

// ErrNotConfigured is returned when no transport has been built.
var ErrNotConfigured = errors.New("mail transport is not configured")

// Factory builds a transport from the current configuration.
type Factory func() (Mail, error)

type handle struct {
	mail Mail
}

// Holder keeps the live transport behind an atomic pointer.
//
// Rebuild swaps in a new transport without closing the previous one, which
// may still be in the middle of a send.
type Holder struct {
	ptr     *atomic.Pointer[handle]
	factory Factory
}

// NewHolder returns an empty Holder using factory to build transports.
func NewHolder(factory Factory) *Holder {
	return &Holder{ptr: atomic.NewPointer[handle](nil), factory: factory}
}

// Load returns the current transport, or ErrNotConfigured.
func (h *Holder) Load() (Mail, error) {
	if cur := h.ptr.Load(); cur != nil {
		return cur.mail, nil
	}
	return nil, ErrNotConfigured
}

// Store replaces the current transport.
func (h *Holder) Store(m Mail) {
	h.ptr.Store(&handle{mail: m})
}

// Rebuild builds a fresh transport, swaps it in and verifies it.
//
// A build failure leaves the current transport in place. A verify failure is
// returned after the swap, the new transport stays usable.
func (h *Holder) Rebuild(ctx context.Context) error {
	m, err := h.factory()
	if err != nil {
		return err
	}

	h.Store(m)
	return m.Verify(ctx)
}

// Close closes the current transport, if any.
func (h *Holder) Close() error {
	if cur := h.ptr.Swap(nil); cur != nil {
		return cur.mail.Close()
	}
	return nil
}
