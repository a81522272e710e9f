package storage

import (
	"sync"
	"testing"

	"github.com/skyaktech/tlq/internal/domain/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenGet_Roundtrip(t *testing.T) {
	s := NewMemory(nil, nil)
	m := message.New("hello")

	s.Add(m)
	got := s.Get(1)

	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].ID)
	assert.Equal(t, message.Processing, got[0].State)
}

func TestGet_FIFOAcrossFive(t *testing.T) {
	s := NewMemory(nil, nil)
	bodies := []string{"m1", "m2", "m3", "m4", "m5"}
	for _, b := range bodies {
		s.Add(message.New(b))
	}

	first := s.Get(3)
	require.Len(t, first, 3)
	assert.Equal(t, "m1", first[0].Body)
	assert.Equal(t, "m2", first[1].Body)
	assert.Equal(t, "m3", first[2].Body)

	rest := s.Get(10)
	require.Len(t, rest, 2)
	assert.Equal(t, "m4", rest[0].Body)
	assert.Equal(t, "m5", rest[1].Body)
}

func TestGet_ZeroReturnsEmptyWithoutError(t *testing.T) {
	s := NewMemory(nil, nil)
	s.Add(message.New("x"))

	got := s.Get(0)

	assert.Empty(t, got)
}

func TestGet_CountExceedingQueueReturnsAllAvailable(t *testing.T) {
	s := NewMemory(nil, nil)
	s.Add(message.New("only"))

	got := s.Get(10)

	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].Body)
}

func TestDelete_RemovesFromProcessingOnly(t *testing.T) {
	s := NewMemory(nil, nil)
	s.Add(message.New("a"))
	got := s.Get(1)

	s.Delete([]string{got[0].ID})

	assert.Empty(t, s.Get(1))
}

func TestDelete_UnknownAndDuplicateIDsAreNoops(t *testing.T) {
	s := NewMemory(nil, nil)
	s.Add(message.New("a"))
	got := s.Get(1)
	id := got[0].ID

	assert.NotPanics(t, func() {
		s.Delete([]string{id, id, "does-not-exist"})
	})
}

func TestDelete_IDStillInQueueIsUntouched(t *testing.T) {
	s := NewMemory(nil, nil)
	m := message.New("queued")
	s.Add(m)

	s.Delete([]string{m.ID})

	got := s.Get(1)
	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].ID)
}

func TestRetry_IncrementsCountAndReinstatesToTail(t *testing.T) {
	s := NewMemory(nil, nil)
	s.Add(message.New("x"))
	leased := s.Get(1)
	require.Len(t, leased, 1)
	assert.Equal(t, 0, leased[0].RetryCount)

	s.Retry([]string{leased[0].ID})

	reinstated := s.Get(1)
	require.Len(t, reinstated, 1)
	assert.Equal(t, leased[0].ID, reinstated[0].ID)
	assert.Equal(t, 1, reinstated[0].RetryCount)
}

func TestRetry_AppliedTwiceOnlyIncrementsOnce(t *testing.T) {
	s := NewMemory(nil, nil)
	s.Add(message.New("x"))
	leased := s.Get(1)
	id := leased[0].ID

	s.Retry([]string{id})
	s.Retry([]string{id}) // second application: id is in queue, not processing; no-op

	got := s.Get(1)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].RetryCount)
}

func TestRetry_PreservesRequestOrderOnReinstatement(t *testing.T) {
	s := NewMemory(nil, nil)
	s.Add(message.New("a"))
	s.Add(message.New("b"))
	leased := s.Get(2)
	require.Len(t, leased, 2)

	// retry in reverse of lease order
	s.Retry([]string{leased[1].ID, leased[0].ID})

	got := s.Get(2)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Body)
	assert.Equal(t, "a", got[1].Body)
}

func TestPurge_ClearsQueueAndProcessing(t *testing.T) {
	s := NewMemory(nil, nil)
	for i := 0; i < 5; i++ {
		s.Add(message.New("m"))
	}
	s.Get(2)

	s.Purge()

	assert.Empty(t, s.Get(10))
}

func TestPurgeWhileProcessing_RetryOfPurgedIDsIsNoop(t *testing.T) {
	s := NewMemory(nil, nil)
	for i := 0; i < 5; i++ {
		s.Add(message.New("m"))
	}
	leased := s.Get(2)

	s.Purge()
	s.Retry([]string{leased[0].ID, leased[1].ID})

	assert.Empty(t, s.Get(10))
}

func TestGet_NoMessageReturnedToTwoConcurrentConsumers(t *testing.T) {
	s := NewMemory(nil, nil)
	const n = 200
	for i := 0; i < n; i++ {
		s.Add(message.New("m"))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]int)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, m := range s.Get(20) {
				mu.Lock()
				seen[m.ID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "message %s observed %d times", id, count)
	}
}
