package ecs

import (
	"testing"
	"time"
)

func TestTimers(t *testing.T) {
	tests := []struct {
		name  string
		run   func(tm *Timers) *int
		steps []time.Duration
		want  int
	}{
		{
			name: "after_fires_once",
			run: func(tm *Timers) *int {
				n := 0
				tm.After(100*time.Millisecond, func() { n++ })
				return &n
			},
			steps: []time.Duration{50 * time.Millisecond, 50 * time.Millisecond, time.Second},
			want:  1,
		},
		{
			name: "after_not_due",
			run: func(tm *Timers) *int {
				n := 0
				tm.After(time.Second, func() { n++ })
				return &n
			},
			steps: []time.Duration{999 * time.Millisecond},
			want:  0,
		},
		{
			name: "every_repeats",
			run: func(tm *Timers) *int {
				n := 0
				tm.Every(2*time.Second, func() { n++ })
				return &n
			},
			steps: []time.Duration{time.Second, time.Second, 2 * time.Second, time.Second},
			want:  2,
		},
		{
			name: "every_catches_up_on_long_step",
			run: func(tm *Timers) *int {
				n := 0
				tm.Every(100*time.Millisecond, func() { n++ })
				return &n
			},
			steps: []time.Duration{350 * time.Millisecond},
			want:  3,
		},
		{
			name: "cancelled_never_fires",
			run: func(tm *Timers) *int {
				n := 0
				h := tm.Every(100*time.Millisecond, func() { n++ })
				tm.Cancel(h)
				return &n
			},
			steps: []time.Duration{time.Second},
			want:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var tm Timers
			n := tc.run(&tm)
			for _, dt := range tc.steps {
				tm.Advance(dt)
			}
			if *n != tc.want {
				t.Fatalf("expected %d calls, got %d", tc.want, *n)
			}
		})
	}
}

func TestTimersCancelFromCallback(t *testing.T) {
	var tm Timers
	n := 0
	var h TimerHandle
	h = tm.Every(10*time.Millisecond, func() {
		n++
		if n == 2 {
			tm.Cancel(h)
		}
	})

	for i := 0; i < 10; i++ {
		tm.Advance(10 * time.Millisecond)
	}
	if n != 2 {
		t.Fatalf("expected 2 calls before cancel, got %d", n)
	}
	if tm.Active(h) || tm.Len() != 0 {
		t.Fatalf("cancelled timer still active")
	}
	if tm.Cancel(h) {
		t.Fatalf("second cancel should report false")
	}
}

func TestTimersScheduledDuringCallbackWaitForNextAdvance(t *testing.T) {
	var tm Timers
	inner := 0
	tm.After(10*time.Millisecond, func() {
		tm.After(0, func() { inner++ })
	})

	tm.Advance(10 * time.Millisecond)
	if inner != 0 {
		t.Fatalf("nested timer fired in the same advance")
	}
	tm.Advance(0)
	if inner != 1 {
		t.Fatalf("expected nested timer to fire, got %d", inner)
	}
}

func TestTimersRejectInvalid(t *testing.T) {
	var tm Timers
	if h := tm.Every(0, func() {}); h != 0 {
		t.Fatalf("zero interval should not schedule")
	}
	if h := tm.After(time.Second, nil); h != 0 {
		t.Fatalf("nil callback should not schedule")
	}
	if tm.Cancel(0) {
		t.Fatalf("zero handle cancel should report false")
	}
}

func TestWorldUpdateAdvancesTimersBeforeSystems(t *testing.T) {
	w := NewWorld()
	fired := false
	w.Timers().After(16*time.Millisecond, func() { fired = true })

	var seen bool
	w.AddSystem(systemFunc(func(*World) { seen = fired }))
	w.Update(16 * time.Millisecond)

	if !seen {
		t.Fatalf("systems should observe timers fired this frame")
	}
	if w.Elapsed() != 16*time.Millisecond {
		t.Fatalf("unexpected elapsed %v", w.Elapsed())
	}
}

type systemFunc func(*World)

func (f systemFunc) Update(w *World) { f(w) }
