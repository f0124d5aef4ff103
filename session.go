package tempo

import (
	"io"
	"os"
	"time"
)

// EventSink is the interface for optional ECS integration. When set on a
// Session, behaviour lifecycle events are forwarded to it.
type EventSink interface {
	EmitEffectEvent(event EffectEvent)
}

// EffectEventKind identifies a behaviour lifecycle transition.
type EffectEventKind uint8

const (
	EffectBound     EffectEventKind = iota // behaviour was bound to a node
	EffectUnbound                          // behaviour was unbound from a node
	EffectCompleted                        // an Effect's progress reached 1 (sent once)
)

// EffectEvent carries a lifecycle transition for the ECS bridge.
type EffectEvent struct {
	Kind      EffectEventKind
	NodeID    uint32
	EntityID  uint32
	Behaviour Behaviour
}

// Session owns the timeline, the tweens and the behaviour managers of one
// running game. Tick advances them in a fixed order; nothing here is safe
// for use from more than one goroutine.
type Session struct {
	timeline *Timeline
	tweens   *Tweener
	nodes    []*Node
	sink     EventSink
	script   *ScriptRunner
	ticking  []*Node // snapshot of nodes for the behaviour pass

	debug    bool
	debugOut io.Writer
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		timeline: NewTimeline(),
		tweens:   NewTweener(),
		debugOut: os.Stderr,
	}
}

// Timeline returns the session's callback scheduler.
func (s *Session) Timeline() *Timeline {
	return s.timeline
}

// Tweens returns the session's tween engine.
func (s *Session) Tweens() *Tweener {
	return s.tweens
}

// Attach registers n with the session and returns its behaviour manager.
// Attaching an already attached node returns its existing manager.
// Panics if n is disposed or attached to another session.
func (s *Session) Attach(n *Node) *BehaviourManager {
	if n.IsDisposed() {
		panic("tempo: cannot attach disposed node " + n.Name)
	}
	if m := n.behaviours; m != nil && !m.closed {
		if m.session != s {
			panic("tempo: node " + n.Name + " belongs to another session")
		}
		return m
	}
	m := newBehaviourManager(s, n)
	n.behaviours = m
	s.nodes = append(s.nodes, n)
	return m
}

// Detach unbinds every behaviour on n and removes it from the session.
// No-op if n is not attached here.
func (s *Session) Detach(n *Node) {
	for i, cur := range s.nodes {
		if cur != n {
			continue
		}
		copy(s.nodes[i:], s.nodes[i+1:])
		s.nodes[len(s.nodes)-1] = nil
		s.nodes = s.nodes[:len(s.nodes)-1]
		n.behaviours.Close()
		n.behaviours = nil
		return
	}
}

// Nodes returns the attached nodes in attach order. The returned slice MUST
// NOT be mutated by the caller.
func (s *Session) Nodes() []*Node {
	return s.nodes
}

// Update advances the session by one Ebitengine tick.
func (s *Session) Update() {
	s.Tick(FrameDelta())
}

// Tick advances the session by dt seconds: due timeline callbacks run first,
// so their changes are visible to behaviours this tick; then every attached
// node's behaviours update in attach order; then tweens advance. Disposed
// nodes are dropped at the end. An attached script runner steps before all
// of this.
func (s *Session) Tick(dt float32) {
	if s.script != nil {
		s.script.step(s)
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.timeline.Advance(dt)

	if s.debug {
		stats.timelineTime = time.Since(t0)
		stats.timersFired = s.timeline.fired
		t0 = time.Now()
	}

	// Nodes attached during the pass start updating next tick. Nodes
	// detached during the pass are skipped.
	s.ticking = append(s.ticking[:0], s.nodes...)
	for _, n := range s.ticking {
		m := n.behaviours
		if n.disposed || m == nil || m.session != s {
			continue
		}
		m.Update(dt)
		stats.behaviours += m.Len()
	}
	clear(s.ticking)

	if s.debug {
		stats.behaviourTime = time.Since(t0)
		t0 = time.Now()
	}

	s.tweens.Advance(dt)

	if s.debug {
		stats.tweenTime = time.Since(t0)
		stats.tweensActive = s.tweens.Len()
		stats.timersPending = s.timeline.Len()
		stats.nodes = len(s.nodes)
		s.debugLog(stats)
		s.debugCheckTweenCount()
	}

	s.pruneDisposed()
}

// Close detaches every node, stops all tweens and drops every scheduled
// callback. Used on engine shutdown.
func (s *Session) Close() {
	for len(s.nodes) > 0 {
		s.Detach(s.nodes[0])
	}
	s.tweens.Clear()
	s.timeline.Reset()
	s.script = nil
}

// SetEventSink sets the optional ECS bridge.
func (s *Session) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick timing
// and counts are logged, and threshold warnings are printed.
func (s *Session) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetDebugOutput redirects debug output. The default is os.Stderr.
func (s *Session) SetDebugOutput(w io.Writer) {
	s.debugOut = w
}

func (s *Session) pruneDisposed() {
	kept := s.nodes[:0]
	for _, n := range s.nodes {
		if n.disposed {
			n.behaviours = nil
			continue
		}
		kept = append(kept, n)
	}
	clear(s.nodes[len(kept):])
	s.nodes = kept
}
