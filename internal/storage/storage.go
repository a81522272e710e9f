// Package storage holds the queue state machine: the ready queue and the
// processing set, and the five operations that move messages between them.
//
// Concurrency model follows internal/infrastructure/objectstore in the
// teacher repo this package was adapted from: one exclusive mutex guards a
// single coherent state struct, held for the whole of each operation. There
// is no I/O and no blocking await inside the critical section, so the lock
// is never held longer than an in-memory slice/map mutation.
package storage

import (
	"sync"

	"github.com/skyaktech/tlq/internal/domain/message"
	"go.uber.org/zap"
)

// Recorder receives depth/operation observations after each mutating call.
// Implemented by internal/metrics; nil-safe so Storage has no hard
// dependency on metrics being wired up (e.g. in unit tests).
type Recorder interface {
	ObserveDepths(queueDepth, processingDepth int)
	CountOp(op string)
	CountRetry(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveDepths(int, int) {}
func (nopRecorder) CountOp(string)         {}
func (nopRecorder) CountRetry(int)         {}

// Storage is the fixed capability set the core queue needs from a backing
// store. The only implementation today is the in-memory one below; a
// future disk-backed or distributed store would implement the same
// interface and plug in behind it unchanged.
type Storage interface {
	Add(msg *message.Message)
	Get(count int) []*message.Message
	Delete(ids []string)
	Purge()
	Retry(ids []string)
}

// Memory is the only Storage implementation: everything lives in process
// memory and is lost on restart, per the queue's non-goals.
type Memory struct {
	log *zap.Logger
	rec Recorder

	mu sync.Mutex
	st state
}

type state struct {
	queue      []*message.Message
	processing map[string]*message.Message
}

// NewMemory constructs a ready-to-use, empty Memory store.
func NewMemory(log *zap.Logger, rec Recorder) *Memory {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Memory{
		log: log.Named("storage"),
		rec: rec,
		st: state{
			queue:      make([]*message.Message, 0),
			processing: make(map[string]*message.Message),
		},
	}
}

// Add appends msg to the tail of the ready queue. Never fails.
func (m *Memory) Add(msg *message.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.st.queue = append(m.st.queue, msg)

	m.rec.CountOp("add")
	m.observeLocked()
}

// Get removes up to count messages from the head of the ready queue,
// transitions them to Processing, and returns them. count=0 returns an
// empty slice without touching state. Never fails.
func (m *Memory) Get(count int) []*message.Message {
	if count <= 0 {
		return []*message.Message{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := count
	if n > len(m.st.queue) {
		n = len(m.st.queue)
	}
	if n == 0 {
		m.rec.CountOp("get")
		return []*message.Message{}
	}

	taken := m.st.queue[:n]
	remaining := make([]*message.Message, len(m.st.queue)-n)
	copy(remaining, m.st.queue[n:])
	m.st.queue = remaining

	out := make([]*message.Message, 0, n)
	for _, msg := range taken {
		msg.State = message.Processing
		m.st.processing[msg.ID] = msg
		out = append(out, msg.Clone())
	}

	m.rec.CountOp("get")
	m.observeLocked()
	return out
}

// Delete removes the given ids from the processing set, if present.
// Unknown ids, ids still in the ready queue, and duplicates are silently
// ignored. Never fails.
func (m *Memory) Delete(ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.st.processing, id)
	}

	m.rec.CountOp("delete")
	m.observeLocked()
}

// Purge clears the ready queue and the processing set unconditionally.
// Never fails.
func (m *Memory) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.st.queue = m.st.queue[:0]
	m.st.processing = make(map[string]*message.Message)

	m.rec.CountOp("purge")
	m.observeLocked()
}

// Retry moves each id found in the processing set back to the ready
// queue, in the order the ids appear in the request, incrementing its
// retry count and resetting its state to Ready. Ids not in the
// processing set (unknown, or still queued) are silently skipped. Never
// fails.
func (m *Memory) Retry(ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reinstated := make([]*message.Message, 0, len(ids))
	for _, id := range ids {
		msg, ok := m.st.processing[id]
		if !ok {
			continue
		}
		delete(m.st.processing, id)
		msg.RetryCount++
		msg.State = message.Ready
		reinstated = append(reinstated, msg)
	}
	m.st.queue = append(m.st.queue, reinstated...)

	m.rec.CountOp("retry")
	m.rec.CountRetry(len(reinstated))
	m.observeLocked()
}

// Depths returns the current ready-queue and processing-set sizes. Used
// by the stats endpoint; not part of the Storage interface since it's an
// observability concern, not a queue operation.
func (m *Memory) Depths() (queueDepth, processingDepth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.queue), len(m.st.processing)
}

// observeLocked reports current depths to the recorder. Must be called
// with mu held; gauge sets are cheap in-memory writes, consistent with
// "no I/O under the lock".
func (m *Memory) observeLocked() {
	m.rec.ObserveDepths(len(m.st.queue), len(m.st.processing))
}
