package tempo

import (
	"errors"
	"fmt"
)

// ErrInvalidBlinkCount is returned when a blink is configured with fewer
// than one blink.
var ErrInvalidBlinkCount = errors.New("tempo: blink count must be positive")

// blinkChain is the blink schedule: one step per blink, each step deciding
// whether another follows.
type blinkChain struct {
	fired int
	total int
	key   TimerKey // pending step, 0 when none
}

// next records a fired step and reports whether another should be scheduled.
func (c *blinkChain) next() bool {
	c.fired++
	return c.fired < c.total
}

// Blink dips a node to the style's extreme and back count times over
// duration seconds. Each blink takes span = duration/count: half going
// down, half coming back. Steps are chained through the session Timeline.
type Blink struct {
	BehaviourBase
	session  *Session
	duration float32
	style    FadeStyle
	span     float32

	node    *Node
	orig    fadeState
	chain   blinkChain
	elapsed float32
	started bool

	downOpacity, upOpacity *TweenHandle
	downScale, upScale     *TweenHandle
}

// NewBlink creates a blink behaviour.
func NewBlink(s *Session, count int, duration float32, style FadeStyle) (*Blink, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidBlinkCount, count)
	}
	if err := validateFade(style, duration); err != nil {
		return nil, err
	}
	return &Blink{
		session:  s,
		duration: duration,
		style:    style,
		span:     duration / float32(count),
		chain:    blinkChain{total: count},
	}, nil
}

func (b *Blink) Duration() float32 { return b.duration }

// Progress is measured by the behaviour's own clock, which is independent
// of the Timeline driving the steps. Under uneven frame times the two can
// disagree by up to a frame.
func (b *Blink) Progress() (float64, bool) {
	if !b.started {
		return 0, false
	}
	return progress(b.elapsed, b.duration), true
}

// Blinks returns the number of blinks started so far.
func (b *Blink) Blinks() int {
	return b.chain.fired
}

// Span returns the time between blink starts.
func (b *Blink) Span() float32 {
	return b.span
}

// Bind records the node's values and schedules the first blink for the next
// timeline advance.
func (b *Blink) Bind(n *Node) {
	b.node = n
	b.orig = snapshotFade(n)
	b.started = true
	b.chain.key = b.session.timeline.Schedule(0, b.step)
}

func (b *Blink) step() {
	b.chain.key = 0
	b.stopTweens()

	a := b.style.axes()
	low := a.extreme(b.orig)
	half := b.span / 2
	tw := b.session.tweens
	n := b.node
	if a.opacity {
		b.downOpacity = TweenFree(tw, n, NodeOpacity, low.opacity, half, nil, func() {
			b.upOpacity = TweenFree(tw, n, NodeOpacity, b.orig.opacity, half, nil, nil)
		})
	}
	if a.scale {
		b.downScale = TweenFree(tw, n, NodeScale, low.scale, half, nil, func() {
			b.upScale = TweenFree(tw, n, NodeScale, b.orig.scale, half, nil, nil)
		})
	}

	if b.chain.next() {
		b.chain.key = b.session.timeline.Schedule(b.span, b.step)
	}
}

func (b *Blink) stopTweens() {
	b.downOpacity.Stop()
	b.upOpacity.Stop()
	b.downScale.Stop()
	b.upScale.Stop()
}

func (b *Blink) UpdateObjectState(n *Node, dt float32) {
	if b.elapsed < b.duration {
		b.elapsed += dt
	}
}

// Unbind cancels the pending step, stops the blink tweens and restores the
// recorded values.
func (b *Blink) Unbind(n *Node) {
	if b.chain.key != 0 {
		b.session.timeline.Cancel(b.chain.key)
		b.chain.key = 0
	}
	b.stopTweens()
	b.style.axes().write(n, b.orig)
	b.node = nil
}
