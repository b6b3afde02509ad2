package clock

import (
	"sort"
	"time"
)

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

// Clock runs callbacks on a fixed period.
type Clock interface {
	Schedule(fn func(), period time.Duration) Handle
	Cancel(h Handle)
	Now() time.Time
}

type timer struct {
	fn     func()
	period time.Duration
	next   time.Time
}

// FrameClock is a single-threaded Clock driven by the frame loop: the loop
// calls Advance once per frame and due callbacks run on the caller's
// goroutine. It is not safe for concurrent use.
type FrameClock struct {
	now    func() time.Time
	timers map[Handle]*timer
	nextID Handle
}

func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{
		now:    now,
		timers: make(map[Handle]*timer),
	}
}

func (c *FrameClock) Now() time.Time {
	return c.now()
}

// Schedule arms fn to run every period, first at Now()+period.
// Non-positive periods are rejected with the zero Handle.
func (c *FrameClock) Schedule(fn func(), period time.Duration) Handle {
	if fn == nil || period <= 0 {
		return 0
	}
	c.nextID++
	c.timers[c.nextID] = &timer{
		fn:     fn,
		period: period,
		next:   c.now().Add(period),
	}
	return c.nextID
}

func (c *FrameClock) Cancel(h Handle) {
	delete(c.timers, h)
}

// Active returns the number of live timers.
func (c *FrameClock) Active() int {
	return len(c.timers)
}

// Advance fires every timer that is due. Each timer fires at most once per
// call and is re-armed relative to the current time, so a slow frame does not
// produce a burst of catch-up callbacks.
func (c *FrameClock) Advance() int {
	now := c.now()

	due := make([]Handle, 0, len(c.timers))
	for h, t := range c.timers {
		if !now.Before(t.next) {
			due = append(due, h)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })

	fired := 0
	for _, h := range due {
		t, ok := c.timers[h]
		if !ok {
			// cancelled by an earlier callback
			continue
		}
		t.next = now.Add(t.period)
		t.fn()
		fired++
	}
	return fired
}
