package market

import "errors"

// Failure taxonomy. Every failure is local and recoverable; nothing in this
// package leaves the store, a thread, or a listing half-mutated. Callers
// match with errors.Is and render accordingly.
var (
	ErrNotFound          = errors.New("listing not found")
	ErrInvalidTransition = errors.New("transition not permitted")
	ErrAlreadyClaimed    = errors.New("listing already claimed")
	ErrThreadClosed      = errors.New("message thread closed")
	ErrEmptyMessage      = errors.New("empty message")
)
