package repository

import (
	"sync"
	"time"
)

// insertClock hands out strictly increasing timestamps at microsecond
// resolution, the finest precision every supported driver keeps.
type insertClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func (c *insertClock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(time.Microsecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

// sectionClock stamps proposal sections so ties on order_num sort by insertion.
var sectionClock = &insertClock{now: time.Now}
