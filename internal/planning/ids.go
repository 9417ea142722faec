package planning

import (
	"sync"
	"time"
)

// IDSource hands out unique, strictly increasing identifiers.
type IDSource interface {
	NextID() int64
}

// ClockIDs seeds ids from the clock in milliseconds and never repeats or goes
// backwards, even when several ids are requested within one millisecond or the
// clock is adjusted.
type ClockIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClockIDs returns an IDSource driven by now; nil means time.Now.
func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}
