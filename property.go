package tempo

// Property names one animatable slot of an object type T. It is a pair of
// typed accessors and is immutable once created. Tweens and jitter use the
// descriptor pointer as the identity of the slot, so two descriptors over
// the same field are independent keys.
type Property[T any, V Value[V]] struct {
	name string
	get  func(*T) V
	set  func(*T, V)
}

// NewProperty creates a property descriptor. Panics if get or set is nil.
func NewProperty[T any, V Value[V]](name string, get func(*T) V, set func(*T, V)) *Property[T, V] {
	if get == nil || set == nil {
		panic("tempo: property " + name + " needs both accessors")
	}
	return &Property[T, V]{name: name, get: get, set: set}
}

// Name returns the descriptor's name.
func (p *Property[T, V]) Name() string { return p.name }

// Get reads the property from obj.
func (p *Property[T, V]) Get(obj *T) V { return p.get(obj) }

// Set writes the property on obj.
func (p *Property[T, V]) Set(obj *T, v V) { p.set(obj, v) }

// --- Node catalog ---

var (
	// NodePosition is (X, Y).
	NodePosition = NewProperty("position",
		func(n *Node) Vec2 { return Vec2{n.X, n.Y} },
		func(n *Node, v Vec2) { n.X, n.Y = v.X, v.Y; n.MarkDirty() })
	NodeX = NewProperty("x",
		func(n *Node) Float { return Float(n.X) },
		func(n *Node, v Float) { n.X = float64(v); n.MarkDirty() })
	NodeY = NewProperty("y",
		func(n *Node) Float { return Float(n.Y) },
		func(n *Node, v Float) { n.Y = float64(v); n.MarkDirty() })
	// NodeScale is (ScaleX, ScaleY).
	NodeScale = NewProperty("scale",
		func(n *Node) Vec2 { return Vec2{n.ScaleX, n.ScaleY} },
		func(n *Node, v Vec2) { n.ScaleX, n.ScaleY = v.X, v.Y; n.MarkDirty() })
	// NodeUniformScale reads ScaleX and writes both axes. It shares fields
	// with NodeScale but is a separate animation slot.
	NodeUniformScale = NewProperty("uniform-scale",
		func(n *Node) Float { return Float(n.ScaleX) },
		func(n *Node, v Float) { n.ScaleX, n.ScaleY = float64(v), float64(v); n.MarkDirty() })
	NodeRotation = NewProperty("rotation",
		func(n *Node) Float { return Float(n.Rotation) },
		func(n *Node, v Float) { n.Rotation = float64(v); n.MarkDirty() })
	// NodeOpacity wraps Node.Alpha.
	NodeOpacity = NewProperty("opacity",
		func(n *Node) Float { return Float(n.Alpha) },
		func(n *Node, v Float) { n.Alpha = float64(v) })
	// NodeTint wraps Node.Color.
	NodeTint = NewProperty("tint",
		func(n *Node) Color { return n.Color },
		func(n *Node, v Color) { n.Color = v })
)

var (
	floatProperties = map[string]*Property[Node, Float]{
		NodeX.Name():            NodeX,
		NodeY.Name():            NodeY,
		NodeUniformScale.Name(): NodeUniformScale,
		NodeRotation.Name():     NodeRotation,
		NodeOpacity.Name():      NodeOpacity,
	}
	vec2Properties = map[string]*Property[Node, Vec2]{
		NodePosition.Name(): NodePosition,
		NodeScale.Name():    NodeScale,
	}
	colorProperties = map[string]*Property[Node, Color]{
		NodeTint.Name(): NodeTint,
	}
)

// FloatProperty looks up a scalar Node property by name.
func FloatProperty(name string) (*Property[Node, Float], bool) {
	p, ok := floatProperties[name]
	return p, ok
}

// Vec2Property looks up a vector Node property by name.
func Vec2Property(name string) (*Property[Node, Vec2], bool) {
	p, ok := vec2Properties[name]
	return p, ok
}

// ColorProperty looks up a color Node property by name.
func ColorProperty(name string) (*Property[Node, Color], bool) {
	p, ok := colorProperties[name]
	return p, ok
}
