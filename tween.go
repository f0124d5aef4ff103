package tempo

import (
	"weak"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenKey identifies a managed (object, property) slot.
type tweenKey struct {
	obj  any // weak.Pointer[T]
	prop any // *Property[T, V]
}

// tweenRecord is implemented by the generic tween type so the Tweener can
// hold tweens of every object and value type in one list.
type tweenRecord interface {
	// step advances the record and writes the property. It returns true when
	// the record has ended, either by finishing or because its target is gone.
	step(dt float32) bool
	handle() *TweenHandle
}

// TweenHandle refers to one started tween. Free tweens can only be stopped
// through their handle.
type TweenHandle struct {
	owner      *Tweener
	key        tweenKey
	clock      *gween.Tween
	onComplete func()
	free       bool
	done       bool
	completed  bool
}

// Stop ends the tween without writing a value and without running its
// completion callback. Safe to call on a finished tween or a nil handle.
func (h *TweenHandle) Stop() {
	if h == nil || h.done {
		return
	}
	h.owner.release(h)
}

// Done reports whether the tween has ended, by completion or by Stop.
func (h *TweenHandle) Done() bool {
	return h == nil || h.done
}

// Completed reports whether the tween ran to its target value.
func (h *TweenHandle) Completed() bool {
	return h != nil && h.completed
}

type tween[T any, V Value[V]] struct {
	TweenHandle
	obj  weak.Pointer[T]
	prop *Property[T, V]
	from V
	to   V
}

func (t *tween[T, V]) handle() *TweenHandle { return &t.TweenHandle }

func (t *tween[T, V]) step(dt float32) bool {
	obj := t.obj.Value()
	if obj == nil || disposed(obj) {
		return true
	}
	p, finished := t.clock.Update(dt)
	if finished {
		t.prop.Set(obj, t.to)
		t.completed = true
		return true
	}
	t.prop.Set(obj, t.from.Lerp(t.to, float64(p)))
	return false
}

// disposed reports whether obj exposes IsDisposed and is disposed.
func disposed(obj any) bool {
	d, ok := obj.(interface{ IsDisposed() bool })
	return ok && d.IsDisposed()
}

// Tweener owns every active tween of a session. At most one managed tween
// runs per (object, property) pair; starting another replaces it.
//
// There is no global instance; the Session owns one and advances it each tick.
type Tweener struct {
	active []tweenRecord
	index  map[tweenKey]*TweenHandle
	live   int
	epoch  uint64 // bumped by Clear
}

// NewTweener creates an empty Tweener.
func NewTweener() *Tweener {
	return &Tweener{index: make(map[tweenKey]*TweenHandle)}
}

// Len returns the number of running tweens, managed and free.
func (e *Tweener) Len() int {
	return e.live
}

// Advance moves every running tween forward by dt seconds. Tweens started
// during the call, e.g. from a completion callback, first move on the next call.
// A finished tween writes its exact target, is removed, and then runs its
// completion callback once. A callback that calls Clear ends the pass; tweens
// it starts afterwards wait for the next call.
func (e *Tweener) Advance(dt float32) {
	epoch := e.epoch
	n := len(e.active)
	for i := 0; i < n; i++ {
		r := e.active[i]
		h := r.handle()
		if h.done {
			continue
		}
		if !r.step(dt) {
			continue
		}
		e.release(h)
		if h.completed && h.onComplete != nil {
			h.onComplete()
			if e.epoch != epoch {
				return
			}
		}
	}

	kept := e.active[:0]
	for _, r := range e.active {
		if !r.handle().done {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = kept
}

// Clear stops every running tween without callbacks.
func (e *Tweener) Clear() {
	for _, r := range e.active {
		if h := r.handle(); !h.done {
			h.done = true
		}
	}
	clear(e.active)
	e.active = e.active[:0]
	clear(e.index)
	e.live = 0
	e.epoch++
}

func (e *Tweener) release(h *TweenHandle) {
	h.done = true
	e.live--
	if !h.free && e.index[h.key] == h {
		delete(e.index, h.key)
	}
}

// Tween animates prop on obj from its current value to `to` over duration
// seconds. A running managed tween on the same pair is discarded without its
// callback. A non-positive duration writes `to` and runs onComplete at once.
// A nil easing function is linear.
func Tween[T any, V Value[V]](e *Tweener, obj *T, prop *Property[T, V], to V, duration float32, fn ease.TweenFunc, onComplete func()) *TweenHandle {
	return startTween(e, obj, prop, to, duration, fn, onComplete, false)
}

// TweenFree starts an unmanaged tween. It neither replaces nor can be
// replaced by other tweens on the pair, and StopTween does not see it.
func TweenFree[T any, V Value[V]](e *Tweener, obj *T, prop *Property[T, V], to V, duration float32, fn ease.TweenFunc, onComplete func()) *TweenHandle {
	return startTween(e, obj, prop, to, duration, fn, onComplete, true)
}

// StopTween removes the managed tween on (obj, prop) without writing a value
// or running its callback. No-op if none is running.
func StopTween[T any, V Value[V]](e *Tweener, obj *T, prop *Property[T, V]) {
	if h, ok := e.index[tweenKey{weak.Make(obj), prop}]; ok {
		e.release(h)
	}
}

// TweenActive reports whether a managed tween is running on (obj, prop).
func TweenActive[T any, V Value[V]](e *Tweener, obj *T, prop *Property[T, V]) bool {
	_, ok := e.index[tweenKey{weak.Make(obj), prop}]
	return ok
}

func startTween[T any, V Value[V]](e *Tweener, obj *T, prop *Property[T, V], to V, duration float32, fn ease.TweenFunc, onComplete func(), free bool) *TweenHandle {
	if obj == nil {
		panic("tempo: tween target is nil")
	}
	key := tweenKey{weak.Make(obj), prop}
	if !free {
		if old, ok := e.index[key]; ok {
			e.release(old)
		}
	}

	if duration <= 0 {
		prop.Set(obj, to)
		h := &TweenHandle{owner: e, key: key, free: free, done: true, completed: true}
		if onComplete != nil {
			onComplete()
		}
		return h
	}

	if fn == nil {
		fn = ease.Linear
	}
	t := &tween[T, V]{
		TweenHandle: TweenHandle{
			owner:      e,
			key:        key,
			clock:      gween.New(0, 1, duration, fn),
			onComplete: onComplete,
			free:       free,
		},
		obj:  key.obj.(weak.Pointer[T]),
		prop: prop,
		from: prop.Get(obj),
		to:   to,
	}
	e.active = append(e.active, t)
	e.live++
	if !free {
		e.index[key] = &t.TweenHandle
	}
	return &t.TweenHandle
}
