// Package message defines the Message entity: the unit of work TLQ moves
// between the ready queue and the processing set.
package message

import "github.com/google/uuid"

// State is the lifecycle stage of a Message.
type State string

const (
	Ready      State = "Ready"
	Processing State = "Processing"
	Done       State = "Done" // declared for wire-shape compatibility; never assigned
)

// Message is an opaque text payload plus the bookkeeping TLQ needs to move
// it between the ready queue and the processing set.
//
// ID is assigned once at construction and never mutated. Body is immutable.
// State, LockUntil, and RetryCount are mutated only by Storage.
type Message struct {
	ID         string `json:"id"`
	Body       string `json:"body"`
	State      State  `json:"state"`
	LockUntil  *int64 `json:"lock_until"`
	RetryCount int    `json:"retry_count"`
}

// New allocates a Message in the Ready state with a fresh time-ordered id.
//
// IDs are UUIDv7: 128 bits, roughly wall-clock ordered, unique under
// concurrent construction. Nothing in this package depends on that
// ordering; it is a property future callers may rely on.
func New(body string) *Message {
	return &Message{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Body:       body,
		State:      Ready,
		LockUntil:  nil,
		RetryCount: 0,
	}
}

// Clone returns a shallow copy, safe to hand to a caller without exposing
// the storage-internal pointer.
func (m *Message) Clone() *Message {
	cp := *m
	return &cp
}
