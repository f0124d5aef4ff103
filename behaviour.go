package tempo

import "reflect"

// Behaviour is a stateful unit of per-frame logic attached to one node.
// The manager calls Bind once when the behaviour is added, UpdateObjectState
// every tick while attached, and Unbind once when it is removed. A
// behaviour instance is single-use: it cannot be attached again after Unbind.
type Behaviour interface {
	Bind(n *Node)
	UpdateObjectState(n *Node, dt float32)
	Unbind(n *Node)
}

// GestureHandler is implemented by behaviours that react to gestures queued
// on their node.
type GestureHandler interface {
	HandleGesture(n *Node, g Gesture)
}

// Effect is a behaviour with a finite duration and observable progress.
type Effect interface {
	Behaviour
	// Duration returns the configured length in seconds.
	Duration() float32
	// Progress returns 0 when started and 1 when complete. ok is false
	// while the effect has not started.
	Progress() (p float64, ok bool)
}

type lifecycle uint8

const (
	lifecycleFresh lifecycle = iota
	lifecycleBound
	lifecycleReleased
)

// BehaviourBase tracks the attach lifecycle. Embed it in a behaviour to make
// the manager reject double binds, double unbinds and reuse with a panic.
type BehaviourBase struct {
	state lifecycle
}

// Bound reports whether the behaviour is currently attached.
func (b *BehaviourBase) Bound() bool {
	return b.state == lifecycleBound
}

func (b *BehaviourBase) markBound() {
	switch b.state {
	case lifecycleBound:
		panic("tempo: behaviour is already bound")
	case lifecycleReleased:
		panic("tempo: behaviour was unbound and cannot be bound again")
	}
	b.state = lifecycleBound
}

func (b *BehaviourBase) markUnbound() {
	if b.state != lifecycleBound {
		panic("tempo: behaviour is not bound")
	}
	b.state = lifecycleReleased
}

// lifecycled is satisfied by any behaviour embedding BehaviourBase.
type lifecycled interface {
	markBound()
	markUnbound()
}

type behaviourEntry struct {
	b         Behaviour
	removed   bool
	completed bool
}

// BehaviourManager is the ordered set of behaviours attached to one node.
// Insertion order is the update order and the search order for lookups.
type BehaviourManager struct {
	session *Session
	node    *Node
	entries []*behaviourEntry
	closed  bool

	// Reused buffers for Update.
	snapshot     []*behaviourEntry
	gestureSpare []Gesture
}

func newBehaviourManager(s *Session, n *Node) *BehaviourManager {
	return &BehaviourManager{session: s, node: n}
}

// Node returns the node this manager belongs to.
func (m *BehaviourManager) Node() *Node {
	return m.node
}

// Len returns the number of attached behaviours.
func (m *BehaviourManager) Len() int {
	return len(m.entries)
}

// Each calls fn for every attached behaviour in insertion order until fn
// returns false.
func (m *BehaviourManager) Each(fn func(Behaviour) bool) {
	for _, e := range m.entries {
		if !fn(e.b) {
			return
		}
	}
}

// Add binds b to the manager's node and appends it. Panics if b is nil,
// already attached, or was attached before.
func (m *BehaviourManager) Add(b Behaviour) {
	if b == nil {
		panic("tempo: cannot add nil behaviour")
	}
	if m.closed {
		panic("tempo: behaviour manager is closed")
	}
	if lc, ok := b.(lifecycled); ok {
		lc.markBound()
	} else if m.indexOf(b) >= 0 {
		panic("tempo: behaviour is already bound")
	}
	b.Bind(m.node)
	m.entries = append(m.entries, &behaviourEntry{b: b})
	m.emit(EffectBound, b)
	if m.session != nil && m.session.debug {
		m.session.debugCheckBehaviourCount(m)
	}
}

// Remove unbinds and removes b. Returns false if b is not attached here.
func (m *BehaviourManager) Remove(b Behaviour) bool {
	i := m.indexOf(b)
	if i < 0 {
		return false
	}
	m.removeEntry(m.entries[i])
	return true
}

// GetBehaviour returns the first behaviour whose dynamic type is exactly B,
// or the zero B if none is attached. Embedding and interface satisfaction
// do not count as a match.
func GetBehaviour[B Behaviour](m *BehaviourManager) B {
	var zero B
	if m == nil {
		return zero
	}
	if e := m.firstOfType(reflect.TypeFor[B]()); e != nil {
		return e.b.(B)
	}
	return zero
}

// RemoveBehaviour unbinds and removes the first behaviour whose dynamic type
// is exactly B. Returns false if none matched.
func RemoveBehaviour[B Behaviour](m *BehaviourManager) bool {
	if m == nil {
		return false
	}
	e := m.firstOfType(reflect.TypeFor[B]())
	if e == nil {
		return false
	}
	m.removeEntry(e)
	return true
}

// Update delivers queued gestures to gesture handlers, then runs
// UpdateObjectState on every behaviour in insertion order. Behaviours removed
// during the pass are skipped.
func (m *BehaviourManager) Update(dt float32) {
	if m.closed {
		return
	}
	n := m.node

	m.snapshot = append(m.snapshot[:0], m.entries...)

	if len(n.gestures) > 0 {
		gs := n.gestures
		n.gestures = m.gestureSpare[:0]
		for _, g := range gs {
			for _, e := range m.snapshot {
				if e.removed {
					continue
				}
				if h, ok := e.b.(GestureHandler); ok {
					h.HandleGesture(n, g)
				}
			}
		}
		clear(gs)
		m.gestureSpare = gs[:0]
	}

	for _, e := range m.snapshot {
		if e.removed {
			continue
		}
		e.b.UpdateObjectState(n, dt)
		if e.completed {
			continue
		}
		if eff, ok := e.b.(Effect); ok {
			if p, started := eff.Progress(); started && p >= 1 {
				e.completed = true
				m.emit(EffectCompleted, e.b)
			}
		}
	}
	clear(m.snapshot)
	m.snapshot = m.snapshot[:0]

	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
}

// Close unbinds every behaviour in insertion order. The manager rejects
// further additions.
func (m *BehaviourManager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	entries := m.entries
	m.entries = nil
	for _, e := range entries {
		if e.removed {
			continue
		}
		m.unbind(e)
	}
}

func (m *BehaviourManager) indexOf(b Behaviour) int {
	for i, e := range m.entries {
		if e.b == b {
			return i
		}
	}
	return -1
}

func (m *BehaviourManager) firstOfType(want reflect.Type) *behaviourEntry {
	for _, e := range m.entries {
		if reflect.TypeOf(e.b) == want {
			return e
		}
	}
	return nil
}

func (m *BehaviourManager) removeEntry(e *behaviourEntry) {
	m.unbind(e)
	for i, cur := range m.entries {
		if cur == e {
			copy(m.entries[i:], m.entries[i+1:])
			m.entries[len(m.entries)-1] = nil
			m.entries = m.entries[:len(m.entries)-1]
			return
		}
	}
}

func (m *BehaviourManager) unbind(e *behaviourEntry) {
	e.removed = true
	if lc, ok := e.b.(lifecycled); ok {
		lc.markUnbound()
	}
	e.b.Unbind(m.node)
	m.emit(EffectUnbound, e.b)
}

func (m *BehaviourManager) emit(kind EffectEventKind, b Behaviour) {
	if m.session == nil || m.session.sink == nil {
		return
	}
	m.session.sink.EmitEffectEvent(EffectEvent{
		Kind:      kind,
		NodeID:    m.node.ID,
		EntityID:  m.node.EntityID,
		Behaviour: b,
	})
}
