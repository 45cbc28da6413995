package fakeapi

import (
	"sync"
	"time"

	"github.com/equilibra/eqboard/internal/domain"
)

// Snowflake layout: 41 bits of milliseconds since Epoch, 10 worker bits,
// 12 sequence bits. IDs issued after the epoch exceed 2^53.
const (
	Epoch        int64 = 1767225600000 // 2026-01-01T00:00:00Z in ms
	workerBits         = 10
	sequenceBits       = 12
	maxWorkerID        = 1<<workerBits - 1
	maxSequence        = 1<<sequenceBits - 1
)

// snowflake issues unique, time-ordered 64-bit identifiers.
type snowflake struct {
	now      func() time.Time
	mu       sync.Mutex
	lastMS   int64
	workerID int64
	sequence int64
}

func newSnowflake(workerID int64, now func() time.Time) *snowflake {
	if workerID < 0 || workerID > maxWorkerID {
		workerID &= maxWorkerID
	}
	return &snowflake{workerID: workerID, now: now, lastMS: -1}
}

// Next returns a fresh identifier.
func (s *snowflake) Next() domain.EntityID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms < s.lastMS {
		// Clock moved backwards.
		ms = s.lastMS
	}
	if ms == s.lastMS {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			// Sequence exhausted within this millisecond; borrow the next one.
			ms = s.lastMS + 1
		}
	} else {
		s.sequence = 0
	}
	s.lastMS = ms

	offset := max(ms-Epoch, 0)
	return domain.IDFromInt64(offset<<(workerBits+sequenceBits) | s.workerID<<sequenceBits | s.sequence)
}
