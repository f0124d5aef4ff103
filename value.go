package tempo

// Value is the set of operations an animatable property value needs. Tweens
// interpolate with Lerp; jitter perturbs with Add, Sub, Mul and Spread.
// All operations are componentwise.
type Value[V any] interface {
	comparable
	// Lerp returns the value a fraction t of the way from the receiver to to.
	Lerp(to V, t float64) V
	Add(o V) V
	Sub(o V) V
	Mul(o V) V
	// Spread returns a value whose components are drawn uniformly from
	// [-c, c], c being the receiver's matching component. rnd returns [0, 1).
	Spread(rnd func() float64) V
	IsZero() bool
}

// Float is a scalar animatable value.
type Float float64

func (f Float) Lerp(to Float, t float64) Float { return Float(lerp(float64(f), float64(to), t)) }
func (f Float) Add(o Float) Float              { return f + o }
func (f Float) Sub(o Float) Float              { return f - o }
func (f Float) Mul(o Float) Float              { return f * o }
func (f Float) IsZero() bool                   { return f == 0 }

func (f Float) Spread(rnd func() float64) Float {
	return Float(spread(float64(f), rnd))
}

// Vec2 is a 2D vector used for positions, scales and offsets.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return Vec2{lerp(v.X, to.X, t), lerp(v.Y, to.Y, t)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) IsZero() bool    { return v.X == 0 && v.Y == 0 }

func (v Vec2) Spread(rnd func() float64) Vec2 {
	return Vec2{spread(v.X, rnd), spread(v.Y, rnd)}
}

// Scale returns v with both components multiplied by k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) Lerp(to Color, t float64) Color {
	return Color{lerp(c.R, to.R, t), lerp(c.G, to.G, t), lerp(c.B, to.B, t), lerp(c.A, to.A, t)}
}

func (c Color) Add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A} }
func (c Color) Sub(o Color) Color { return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A} }
func (c Color) Mul(o Color) Color { return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A} }
func (c Color) IsZero() bool      { return c == Color{} }

func (c Color) Spread(rnd func() float64) Color {
	return Color{spread(c.R, rnd), spread(c.G, rnd), spread(c.B, rnd), spread(c.A, rnd)}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// spread draws uniformly from [-m, m]. A zero magnitude skips the draw so
// that axes without jitter do not consume random numbers.
func spread(m float64, rnd func() float64) float64 {
	if m == 0 {
		return 0
	}
	return (rnd()*2 - 1) * m
}
