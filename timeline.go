package tempo

import "slices"

// TimerKey identifies a scheduled callback. Keys are never reused within a
// Timeline. The zero key is never issued.
type TimerKey uint64

type timerState uint8

const (
	timerPending timerState = iota
	timerFired
	timerCancelled
)

type timer struct {
	key       TimerKey
	remaining float32
	fn        func()
	state     timerState
}

// Timeline runs one-shot callbacks after a delay. A session owns one and
// advances it once per tick; behaviours receive it through the session.
type Timeline struct {
	next    TimerKey
	pending []*timer // scheduling order
	index   map[TimerKey]*timer
	due     []*timer // reused expiry buffer
	fired   int      // callbacks run by the last Advance
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{index: make(map[TimerKey]*timer)}
}

// Schedule registers fn to run once delay seconds of Advance time from now.
// fn never runs inside Schedule: a zero delay fires on the next Advance that
// moves time forward. Panics on a negative delay or nil fn.
func (tl *Timeline) Schedule(delay float32, fn func()) TimerKey {
	if delay < 0 {
		panic("tempo: negative timeline delay")
	}
	if fn == nil {
		panic("tempo: nil timeline callback")
	}
	tl.next++
	t := &timer{key: tl.next, remaining: delay, fn: fn}
	tl.pending = append(tl.pending, t)
	tl.index[t.key] = t
	return t.key
}

// Cancel drops the callback registered under key. Unknown, fired and already
// cancelled keys are ignored.
func (tl *Timeline) Cancel(key TimerKey) {
	t, ok := tl.index[key]
	if !ok {
		return
	}
	delete(tl.index, key)
	t.state = timerCancelled
	if i := slices.Index(tl.pending, t); i >= 0 {
		tl.pending = slices.Delete(tl.pending, i, i+1)
	}
}

// Pending reports whether key is scheduled and has neither fired nor been
// cancelled.
func (tl *Timeline) Pending(key TimerKey) bool {
	_, ok := tl.index[key]
	return ok
}

// Len returns the number of scheduled callbacks.
func (tl *Timeline) Len() int {
	return len(tl.index)
}

// Advance moves time forward by dt seconds and runs the callbacks that came
// due, most overdue first and in scheduling order on ties. Each record leaves
// the timeline before its callback runs, so a callback may schedule again
// freely; records it adds wait for the next Advance. A non-positive dt does
// nothing.
func (tl *Timeline) Advance(dt float32) {
	tl.fired = 0
	if dt <= 0 || len(tl.pending) == 0 {
		return
	}

	due := tl.due[:0]
	kept := tl.pending[:0]
	for _, t := range tl.pending {
		t.remaining -= dt
		if t.remaining <= 0 {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	clear(tl.pending[len(kept):])
	tl.pending = kept

	// Stable: equal overshoot keeps scheduling order.
	slices.SortStableFunc(due, func(a, b *timer) int {
		switch {
		case a.remaining < b.remaining:
			return -1
		case a.remaining > b.remaining:
			return 1
		}
		return 0
	})

	for _, t := range due {
		if t.state != timerPending {
			continue
		}
		delete(tl.index, t.key)
		t.state = timerFired
		tl.fired++
		t.fn()
	}
	clear(due)
	tl.due = due[:0]
}

// Reset drops every scheduled callback without running it.
func (tl *Timeline) Reset() {
	for _, t := range tl.index {
		t.state = timerCancelled
	}
	clear(tl.pending)
	tl.pending = tl.pending[:0]
	clear(tl.index)
}
