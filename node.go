package tempo

// nodeIDCounter is a plain counter; tempo is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an animatable object: the state effects read and write. Rendering
// is left to the host game, which copies these fields into its own sprites.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Transform
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64

	// Appearance
	Alpha   float64
	Color   Color
	Visible bool

	// Metadata
	UserData any
	EntityID uint32

	// OnUpdate, when set, runs once per tick after the node's behaviours.
	OnUpdate func(dt float32)

	behaviours *BehaviourManager
	gestures   []Gesture
	dirty      bool
	disposed   bool
}

// NewNode creates a node with identity scale, full opacity and a white tint.
func NewNode(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Color:   ColorWhite,
		Visible: true,
		dirty:   true,
	}
}

// MarkDirty flags the node's transform as changed since the host last read it.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// TakeDirty reports whether the transform changed since the previous call
// and clears the flag.
func (n *Node) TakeDirty() bool {
	d := n.dirty
	n.dirty = false
	return d
}

// Behaviours returns the node's behaviour manager, or nil if the node is not
// attached to a Session.
func (n *Node) Behaviours() *BehaviourManager {
	return n.behaviours
}

// PushGesture queues a recognized gesture for the node. Queued gestures are
// delivered to the node's behaviours on the next tick.
func (n *Node) PushGesture(g Gesture) {
	if n.disposed {
		return
	}
	n.gestures = append(n.gestures, g)
}

// PendingGestures returns the number of queued gestures.
func (n *Node) PendingGestures() int {
	return len(n.gestures)
}

// Dispose unbinds every attached behaviour and marks the node as disposed.
// Tweens targeting a disposed node stop on their next advance.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	if n.behaviours != nil {
		n.behaviours.Close()
	}
	n.disposed = true
	n.gestures = nil
	n.UserData = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}
