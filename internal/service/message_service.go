// Package service is the thin validation layer above storage: it rejects
// malformed input with the exact error strings the API contract requires
// and otherwise forwards to Storage unchanged. Grounded in the teacher's
// internal/service.*Service pattern (constructor takes a *zap.Logger,
// wraps one storage dependency, returns plain errors for the adapter to
// render).
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skyaktech/tlq/internal/domain/message"
	"github.com/skyaktech/tlq/internal/storage"
	"go.uber.org/zap"
)

// ErrBodyTooLarge, ErrNoIDs are returned verbatim by Add/Delete/Retry; the
// adapter renders their Error() text as the HTTP 400 body unmodified.
var (
	ErrBodyTooLarge = errors.New("Message body size is too large")
	ErrNoIDs        = errors.New("No message IDs provided")
)

// MessageService validates requests and forwards them to Storage.
type MessageService struct {
	log            *zap.Logger
	store          storage.Storage
	maxMessageSize int
}

// New constructs a MessageService bound to store, enforcing maxMessageSize
// on Add.
func New(log *zap.Logger, store storage.Storage, maxMessageSize int) *MessageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MessageService{
		log:            log.Named("message-service"),
		store:          store,
		maxMessageSize: maxMessageSize,
	}
}

// Add validates body size, constructs a Message, and stores it.
func (s *MessageService) Add(body string) (*message.Message, error) {
	if len(body) > s.maxMessageSize {
		return nil, ErrBodyTooLarge
	}

	msg := message.New(body)
	s.store.Add(msg)
	return msg, nil
}

// Get returns up to count messages, leasing them into Processing. count=0
// is legal and yields an empty slice. Never fails.
func (s *MessageService) Get(count int) []*message.Message {
	return s.store.Get(count)
}

// Delete validates ids and removes the ones found in the processing set.
func (s *MessageService) Delete(ids []string) error {
	if err := validateIDs(ids); err != nil {
		return err
	}
	s.store.Delete(ids)
	return nil
}

// Purge unconditionally clears the queue and the processing set. No
// validation: an empty or absent id list is meaningless for purge.
func (s *MessageService) Purge() error {
	s.store.Purge()
	return nil
}

// Retry validates ids and reinstates the ones found in the processing set.
func (s *MessageService) Retry(ids []string) error {
	if err := validateIDs(ids); err != nil {
		return err
	}
	s.store.Retry(ids)
	return nil
}

// validateIDs rejects an empty id list, and rejects the request if any id
// fails to parse as a UUID. Ids that parse but are not currently stored
// are not considered invalid here; Storage silently tolerates them.
func validateIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrNoIDs
	}

	var bad []string
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			bad = append(bad, id)
		}
	}
	if len(bad) == 0 {
		return nil
	}

	quoted := make([]string, len(bad))
	for i, id := range bad {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Errorf("Invalid message IDs: [%s]", strings.Join(quoted, ", "))
}
