package testutil

import (
	"sync"
	"time"
)

// SeqIDs is a deterministic IDSource counting up from Start.
type SeqIDs struct {
	mu   sync.Mutex
	next int64
}

func NewSeqIDs(start int64) *SeqIDs {
	return &SeqIDs{next: start}
}

func (s *SeqIDs) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}

// Clock is a settable time source for services under test.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
