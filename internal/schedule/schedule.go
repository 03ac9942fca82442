// Package schedule runs one-shot callbacks from a frame loop. Nothing fires on its own goroutine:
// the owner calls Advance once per frame with the current time and due callbacks run there, in
// deadline order, on the caller's stack.
package schedule

import (
	"sort"
	"time"
)

// Token identifies a scheduled event so it can be cancelled. The zero Token is never issued.
type Token uint64

type event struct {
	token Token
	at    time.Time
	fn    func()
}

// Scheduler holds pending one-shot events. The zero value is ready to use. It is not safe for
// concurrent use.
type Scheduler struct {
	last   Token
	events []event
}

// After arms fn to run on the first Advance at or after now+d and returns its cancellation token.
func (s *Scheduler) After(now time.Time, d time.Duration, fn func()) Token {
	s.last++
	e := event{token: s.last, at: now.Add(d), fn: fn}
	// keep events sorted by deadline; ties keep arming order
	i := sort.Search(len(s.events), func(i int) bool { return s.events[i].at.After(e.at) })
	s.events = append(s.events, event{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = e
	return e.token
}

// Cancel removes the event for t. It reports false if t already fired, was cancelled, or was
// never issued.
func (s *Scheduler) Cancel(t Token) bool {
	for i, e := range s.events {
		if e.token == t {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return true
		}
	}
	return false
}

// Advance runs every event whose deadline is not after now and returns how many ran. Callbacks
// may arm or cancel events; anything they arm for a deadline <= now also runs in this call.
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for len(s.events) > 0 && !s.events[0].at.After(now) {
		e := s.events[0]
		s.events = s.events[1:]
		e.fn()
		fired++
	}
	return fired
}

// Pending returns the number of armed events.
func (s *Scheduler) Pending() int {
	return len(s.events)
}

// Next returns the earliest deadline, or false when nothing is armed.
func (s *Scheduler) Next() (time.Time, bool) {
	if len(s.events) == 0 {
		return time.Time{}, false
	}
	return s.events[0].at, true
}
