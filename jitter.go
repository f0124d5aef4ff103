package tempo

import (
	"errors"
	"math/rand/v2"
)

// ErrInvalidDelay is returned for a negative jitter resample delay.
var ErrInvalidDelay = errors.New("tempo: delay must not be negative")

// JitterConfig controls a recurring random perturbation.
type JitterConfig[V Value[V]] struct {
	// Range is the per-component magnitude. Each resample draws every
	// component uniformly from [-Range, Range].
	Range V
	// Relative scales Range by the property's unperturbed value.
	Relative bool
	// Delay is the number of seconds between resamples. Zero resamples
	// every update.
	Delay float32
}

// Jitter perturbs one property of one object without drifting: each
// resample removes the previous offset before adding the new one.
type Jitter[T any, V Value[V]] struct {
	prop    *Property[T, V]
	cfg     JitterConfig[V]
	rnd     func() float64
	last    V
	applied V // value last written; differs from Get after an outside write
	wrote   bool
	elapsed float32
}

// NewJitter creates a jitter for prop. rnd returns values in [0, 1); nil
// uses math/rand/v2.
func NewJitter[T any, V Value[V]](prop *Property[T, V], cfg JitterConfig[V], rnd func() float64) (*Jitter[T, V], error) {
	if cfg.Delay < 0 {
		return nil, ErrInvalidDelay
	}
	if rnd == nil {
		rnd = rand.Float64
	}
	return &Jitter[T, V]{prop: prop, cfg: cfg, rnd: rnd}, nil
}

// Seeded returns a deterministic random source for NewJitter.
func Seeded(seed uint64) func() float64 {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float64
}

// Update accumulates dt and resamples once the configured delay has passed.
func (j *Jitter[T, V]) Update(obj *T, dt float32) {
	j.elapsed += dt
	if j.elapsed < j.cfg.Delay {
		return
	}
	j.elapsed = 0
	j.Resample(obj)
}

// Resample replaces the current offset with a fresh one and returns the new
// live value. A zero magnitude draws nothing and leaves the unperturbed
// value in place. If something else wrote the property since the last
// resample, that value becomes the new base.
func (j *Jitter[T, V]) Resample(obj *T) V {
	cur := j.prop.Get(obj)
	j.rebase(cur)
	base := cur.Sub(j.last)

	mag := j.cfg.Range
	if j.cfg.Relative {
		mag = mag.Mul(base)
	}
	if mag.IsZero() {
		if j.last.IsZero() {
			return cur
		}
		var zero V
		j.last = zero
		j.set(obj, base)
		return base
	}

	offset := mag.Spread(j.rnd)
	out := base.Add(offset)
	j.set(obj, out)
	j.last = offset
	return out
}

// rebase forgets the current offset when cur is not what the jitter last
// wrote, since another writer has already replaced the perturbed value.
func (j *Jitter[T, V]) rebase(cur V) {
	if j.wrote && cur != j.applied {
		var zero V
		j.last = zero
		j.wrote = false
	}
}

func (j *Jitter[T, V]) set(obj *T, v V) {
	j.prop.Set(obj, v)
	j.applied = v
	j.wrote = true
}

// Offset returns the perturbation currently applied.
func (j *Jitter[T, V]) Offset() V {
	return j.last
}

// Base returns obj's property value without the current perturbation.
func (j *Jitter[T, V]) Base(obj *T) V {
	cur := j.prop.Get(obj)
	if j.wrote && cur != j.applied {
		return cur
	}
	return cur.Sub(j.last)
}

// Clear removes the current perturbation and restarts the delay. A value
// written over the perturbation by someone else is left alone.
func (j *Jitter[T, V]) Clear(obj *T) {
	j.rebase(j.prop.Get(obj))
	if !j.last.IsZero() {
		j.prop.Set(obj, j.prop.Get(obj).Sub(j.last))
	}
	var zero V
	j.last = zero
	j.applied = zero
	j.wrote = false
	j.elapsed = 0
}

// JitterBehaviour attaches a Jitter to a node. Unbinding removes the
// current perturbation.
type JitterBehaviour[V Value[V]] struct {
	BehaviourBase
	jitter *Jitter[Node, V]
}

// NewJitterBehaviour creates a jitter behaviour for a Node property.
func NewJitterBehaviour[V Value[V]](prop *Property[Node, V], cfg JitterConfig[V], rnd func() float64) (*JitterBehaviour[V], error) {
	j, err := NewJitter(prop, cfg, rnd)
	if err != nil {
		return nil, err
	}
	return &JitterBehaviour[V]{jitter: j}, nil
}

// Jitter returns the underlying jitter state.
func (b *JitterBehaviour[V]) Jitter() *Jitter[Node, V] {
	return b.jitter
}

func (b *JitterBehaviour[V]) Bind(n *Node) {}

func (b *JitterBehaviour[V]) UpdateObjectState(n *Node, dt float32) {
	b.jitter.Update(n, dt)
}

func (b *JitterBehaviour[V]) Unbind(n *Node) {
	b.jitter.Clear(n)
}
