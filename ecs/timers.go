package ecs

import "time"

// TimerHandle identifies a scheduled callback. The zero handle is never
// issued, so it can be stored as "no timer".
type TimerHandle uint64

type timer struct {
	handle    TimerHandle
	remaining time.Duration
	interval  time.Duration
	repeat    bool
	fn        func()
	done      bool
}

// Timers runs callbacks after an amount of simulated time has elapsed. It is
// driven by World.Update and never blocks the frame.
type Timers struct {
	next  TimerHandle
	items []*timer
}

// After schedules fn to run once, d from now.
func (t *Timers) After(d time.Duration, fn func()) TimerHandle {
	return t.schedule(d, d, false, fn)
}

// Every schedules fn to run every d until cancelled.
func (t *Timers) Every(d time.Duration, fn func()) TimerHandle {
	return t.schedule(d, d, true, fn)
}

func (t *Timers) schedule(first, interval time.Duration, repeat bool, fn func()) TimerHandle {
	if t == nil || fn == nil {
		return 0
	}
	if repeat && interval <= 0 {
		return 0
	}
	t.next++
	t.items = append(t.items, &timer{
		handle:    t.next,
		remaining: first,
		interval:  interval,
		repeat:    repeat,
		fn:        fn,
	})
	return t.next
}

// Cancel stops a pending timer. It reports whether the timer was still active.
func (t *Timers) Cancel(h TimerHandle) bool {
	if t == nil || h == 0 {
		return false
	}
	for _, it := range t.items {
		if it.handle == h && !it.done {
			it.done = true
			return true
		}
	}
	return false
}

// Active reports whether h is still scheduled.
func (t *Timers) Active(h TimerHandle) bool {
	if t == nil || h == 0 {
		return false
	}
	for _, it := range t.items {
		if it.handle == h {
			return !it.done
		}
	}
	return false
}

// Len returns the number of scheduled timers.
func (t *Timers) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, it := range t.items {
		if !it.done {
			n++
		}
	}
	return n
}

// Advance moves every timer forward by dt and fires the due ones in the order
// they were scheduled. Timers created by a callback start counting on the
// next Advance.
func (t *Timers) Advance(dt time.Duration) {
	if t == nil || len(t.items) == 0 {
		return
	}
	due := append([]*timer(nil), t.items...)
	for _, it := range due {
		if it.done {
			continue
		}
		it.remaining -= dt
		for !it.done && it.remaining <= 0 {
			it.fn()
			if !it.repeat {
				it.done = true
				break
			}
			it.remaining += it.interval
		}
	}

	live := t.items[:0]
	for _, it := range t.items {
		if !it.done {
			live = append(live, it)
		}
	}
	for i := len(live); i < len(t.items); i++ {
		t.items[i] = nil
	}
	t.items = live
}
