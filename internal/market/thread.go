package market

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Message is one immutable entry in a listing's thread.
type Message struct {
	ID        string
	Sender    Role
	Text      string
	Timestamp time.Time
}

// Thread is the append-only message log bound to one reserved listing. The
// two participants are whoever the listing's owner/claimant pair is; the
// thread itself never edits or deletes. Writes are refused the moment the
// bound listing stops being reserved.
type Thread struct {
	listingID string
	store     *Store
	entropy   *ulid.MonotonicEntropy
	msgs      []Message
	lastTS    time.Time
	now       func() time.Time
	closed    bool
}

func newThread(listingID string, store *Store) *Thread {
	return &Thread{
		listingID: listingID,
		store:     store,
		entropy:   ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:       time.Now,
	}
}

// ListingID reports the listing this thread is bound to.
func (t *Thread) ListingID() string { return t.listingID }

// Append records a message from sender. It fails with ErrThreadClosed unless
// the bound listing is currently reserved, and with ErrEmptyMessage when the
// text trims to nothing. A failed append records nothing.
func (t *Thread) Append(sender Role, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	// a discarded handle stays dead even if the listing is reserved again
	if t.closed {
		return Message{}, fmt.Errorf("append to %s: %w", t.listingID, ErrThreadClosed)
	}
	l, err := t.store.Get(t.listingID)
	if err != nil {
		return Message{}, err
	}
	if l.Status != StatusReserved {
		return Message{}, fmt.Errorf("append to %s (%s): %w", t.listingID, l.Status, ErrThreadClosed)
	}
	ts := t.now()
	// timestamps never step backwards within a thread
	if ts.Before(t.lastTS) {
		ts = t.lastTS
	}
	m := Message{
		ID:        ulid.MustNew(ulid.Timestamp(ts), t.entropy).String(),
		Sender:    sender,
		Text:      text,
		Timestamp: ts,
	}
	t.msgs = append(t.msgs, m)
	t.lastTS = ts
	return m, nil
}

// History returns the messages in timestamp order, insertion order on ties.
// Appends keep timestamps non-decreasing, so the backing slice is already
// sorted; the copy keeps callers from aliasing the log.
func (t *Thread) History() []Message {
	out := make([]Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}
