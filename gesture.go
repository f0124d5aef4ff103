package tempo

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// GestureKind identifies a recognized gesture.
type GestureKind uint8

const (
	GestureTap   GestureKind = iota // a press and release without travel
	GestureSwipe                    // a fast press-move-release; DX/DY hold the travel
)

// Gesture is a trigger produced by an input recognizer outside tempo.
// Gestures are queued on a node with PushGesture and delivered to the node's
// behaviours during the next tick.
type Gesture struct {
	Kind     GestureKind
	X, Y     float64 // where the gesture started
	DX, DY   float64 // travel (GestureSwipe)
	EntityID uint32
}

// DoubleTap reacts to two taps within Window seconds with a scale pulse.
// The first tap arms the behaviour; a Timeline callback disarms it when the
// window closes.
type DoubleTap struct {
	BehaviourBase
	session       *Session
	window        float32
	pulse         float64
	pulseDuration float32

	// OnDoubleTap, when set, runs after the pulse starts.
	OnDoubleTap func(n *Node, g Gesture)

	armed  bool
	expiry TimerKey
	base   Vec2
	up     *TweenHandle
	down   *TweenHandle
	count  int
}

// NewDoubleTap creates a double-tap behaviour. pulse is the scale multiplier
// at the peak of the reaction, reached halfway through pulseDuration.
func NewDoubleTap(s *Session, window float32, pulse float64, pulseDuration float32) (*DoubleTap, error) {
	if window <= 0 {
		return nil, fmt.Errorf("double-tap window: %w", ErrInvalidDuration)
	}
	if pulseDuration <= 0 {
		return nil, fmt.Errorf("double-tap pulse: %w", ErrInvalidDuration)
	}
	return &DoubleTap{session: s, window: window, pulse: pulse, pulseDuration: pulseDuration}, nil
}

// Armed reports whether a first tap is waiting for its partner.
func (d *DoubleTap) Armed() bool {
	return d.armed
}

// Count returns the number of double taps recognized.
func (d *DoubleTap) Count() int {
	return d.count
}

func (d *DoubleTap) Bind(n *Node) {}

func (d *DoubleTap) HandleGesture(n *Node, g Gesture) {
	if g.Kind != GestureTap {
		return
	}
	if !d.armed {
		d.armed = true
		d.expiry = d.session.timeline.Schedule(d.window, d.disarm)
		return
	}
	d.session.timeline.Cancel(d.expiry)
	d.disarm()
	d.count++
	d.react(n)
	if d.OnDoubleTap != nil {
		d.OnDoubleTap(n, g)
	}
}

func (d *DoubleTap) disarm() {
	d.armed = false
	d.expiry = 0
}

func (d *DoubleTap) react(n *Node) {
	// A pulse already in flight keeps its base so repeated taps do not
	// ratchet the scale upward.
	if d.up.Done() && d.down.Done() {
		d.base = NodeScale.Get(n)
	}
	half := d.pulseDuration / 2
	tw := d.session.tweens
	d.up = Tween(tw, n, NodeScale, d.base.Scale(d.pulse), half, ease.OutQuad, func() {
		d.down = Tween(tw, n, NodeScale, d.base, half, ease.InQuad, nil)
	})
}

func (d *DoubleTap) UpdateObjectState(n *Node, dt float32) {}

// Unbind cancels a pending window and returns the scale to its base.
func (d *DoubleTap) Unbind(n *Node) {
	if d.expiry != 0 {
		d.session.timeline.Cancel(d.expiry)
	}
	d.disarm()
	if !d.up.Done() || !d.down.Done() {
		d.up.Stop()
		d.down.Stop()
		NodeScale.Set(n, d.base)
	}
}

// Swipe slides a node along swipes at least MinDistance long. The node
// travels the swipe vector multiplied by travel.
type Swipe struct {
	BehaviourBase
	session     *Session
	minDistance float64
	travel      float64
	duration    float32

	// OnSwipe, when set, runs after the slide starts.
	OnSwipe func(n *Node, g Gesture)

	move   *TweenHandle
	target Vec2
	count  int
}

// NewSwipe creates a swipe behaviour sliding over duration seconds.
func NewSwipe(s *Session, minDistance, travel float64, duration float32) (*Swipe, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("swipe: %w", ErrInvalidDuration)
	}
	return &Swipe{session: s, minDistance: minDistance, travel: travel, duration: duration}, nil
}

// Count returns the number of swipes acted on.
func (s *Swipe) Count() int {
	return s.count
}

func (s *Swipe) Bind(n *Node) {}

func (s *Swipe) HandleGesture(n *Node, g Gesture) {
	if g.Kind != GestureSwipe || math.Hypot(g.DX, g.DY) < s.minDistance {
		return
	}
	// Chained swipes accumulate from the previous target, not from wherever
	// the slide happens to be.
	from := NodePosition.Get(n)
	if !s.move.Done() {
		from = s.target
	}
	s.target = from.Add(Vec2{g.DX, g.DY}.Scale(s.travel))
	s.move = Tween(s.session.tweens, n, NodePosition, s.target, s.duration, ease.OutCubic, nil)
	s.count++
	if s.OnSwipe != nil {
		s.OnSwipe(n, g)
	}
}

func (s *Swipe) UpdateObjectState(n *Node, dt float32) {}

// Unbind jumps an unfinished slide to its target.
func (s *Swipe) Unbind(n *Node) {
	if !s.move.Done() {
		s.move.Stop()
		NodePosition.Set(n, s.target)
	}
}
