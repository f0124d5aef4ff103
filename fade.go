package tempo

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

var (
	// ErrInvalidDuration is returned when an effect is configured with a
	// non-positive duration.
	ErrInvalidDuration = errors.New("tempo: duration must be positive")
	// ErrUnknownStyle is returned for a FadeStyle outside the defined set.
	ErrUnknownStyle = errors.New("tempo: unknown fade style")
)

// FadeStyle selects which of opacity and scale take part in a fade or blink,
// and the scale extreme used.
type FadeStyle uint8

const (
	FadeOpacity       FadeStyle = iota // opacity to 0
	FadeZoom                           // scale to 0
	FadeZoomAndFade                    // opacity to 0 and scale to 0
	FadeExpand                         // scale to 2×
	FadeExpandAndFade                  // opacity to 0 and scale to 2×
	fadeStyleCount
)

type fadeAxes struct {
	opacity bool
	scale   bool
	factor  float64 // scale extreme as a multiple of the original scale
}

var fadeTable = [fadeStyleCount]fadeAxes{
	FadeOpacity:       {opacity: true},
	FadeZoom:          {scale: true, factor: 0},
	FadeZoomAndFade:   {opacity: true, scale: true, factor: 0},
	FadeExpand:        {scale: true, factor: 2},
	FadeExpandAndFade: {opacity: true, scale: true, factor: 2},
}

var fadeStyleNames = [fadeStyleCount]string{
	FadeOpacity:       "fade",
	FadeZoom:          "zoom",
	FadeZoomAndFade:   "zoom-and-fade",
	FadeExpand:        "expand",
	FadeExpandAndFade: "expand-and-fade",
}

func (s FadeStyle) String() string {
	if s >= fadeStyleCount {
		return fmt.Sprintf("FadeStyle(%d)", uint8(s))
	}
	return fadeStyleNames[s]
}

// ParseFadeStyle returns the style with the given name.
func ParseFadeStyle(name string) (FadeStyle, error) {
	for i, n := range fadeStyleNames {
		if n == name {
			return FadeStyle(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

func (s FadeStyle) axes() fadeAxes {
	return fadeTable[s]
}

// fadeState is the opacity and scale a fade moves away from or back to.
type fadeState struct {
	opacity Float
	scale   Vec2
}

func snapshotFade(n *Node) fadeState {
	return fadeState{opacity: NodeOpacity.Get(n), scale: NodeScale.Get(n)}
}

// extreme returns the faded end of st for the style's axes.
func (a fadeAxes) extreme(st fadeState) fadeState {
	out := st
	if a.opacity {
		out.opacity = 0
	}
	if a.scale {
		out.scale = st.scale.Scale(a.factor)
	}
	return out
}

// write sets the style's axes on n to st.
func (a fadeAxes) write(n *Node, st fadeState) {
	if a.opacity {
		NodeOpacity.Set(n, st.opacity)
	}
	if a.scale {
		NodeScale.Set(n, st.scale)
	}
}

// fadeTweens holds the managed tweens one fade runs.
type fadeTweens struct {
	opacity *TweenHandle
	scale   *TweenHandle
}

// start tweens the style's axes on n to st. onDone runs once after every
// started tween has completed.
func (ft *fadeTweens) start(e *Tweener, n *Node, a fadeAxes, st fadeState, d float32, fn ease.TweenFunc, onDone func()) {
	remaining := 0
	if a.opacity {
		remaining++
	}
	if a.scale {
		remaining++
	}
	done := func() {
		remaining--
		if remaining == 0 && onDone != nil {
			onDone()
		}
	}
	if a.opacity {
		ft.opacity = Tween(e, n, NodeOpacity, st.opacity, d, fn, done)
	}
	if a.scale {
		ft.scale = Tween(e, n, NodeScale, st.scale, d, fn, done)
	}
}

// finish stops running tweens and writes their targets.
func (ft *fadeTweens) finish(n *Node, st fadeState) {
	if h := ft.opacity; h != nil && !h.Done() {
		h.Stop()
		NodeOpacity.Set(n, st.opacity)
	}
	if h := ft.scale; h != nil && !h.Done() {
		h.Stop()
		NodeScale.Set(n, st.scale)
	}
}

func validateFade(style FadeStyle, duration float32) error {
	if style >= fadeStyleCount {
		return fmt.Errorf("%w: %d", ErrUnknownStyle, uint8(style))
	}
	if duration <= 0 {
		return fmt.Errorf("fade: %w (got %v)", ErrInvalidDuration, duration)
	}
	return nil
}

// progress returns elapsed/duration clamped to [0, 1].
func progress(elapsed, duration float32) float64 {
	p := float64(elapsed) / float64(duration)
	if p > 1 {
		return 1
	}
	return p
}

// FadeIn brings a node in from the style's faded extreme. Binding records
// the node's opacity and scale, jumps to the extreme and tweens back.
type FadeIn struct {
	BehaviourBase
	session  *Session
	style    FadeStyle
	duration float32
	easing   ease.TweenFunc

	target  fadeState
	tweens  fadeTweens
	elapsed float32
	started bool
}

// NewFadeIn creates a fade-in lasting duration seconds. A nil easing is linear.
func NewFadeIn(s *Session, style FadeStyle, duration float32, easing ease.TweenFunc) (*FadeIn, error) {
	if err := validateFade(style, duration); err != nil {
		return nil, err
	}
	return &FadeIn{session: s, style: style, duration: duration, easing: easing}, nil
}

func (f *FadeIn) Duration() float32 { return f.duration }

func (f *FadeIn) Progress() (float64, bool) {
	if !f.started {
		return 0, false
	}
	return progress(f.elapsed, f.duration), true
}

func (f *FadeIn) Bind(n *Node) {
	a := f.style.axes()
	f.target = snapshotFade(n)
	a.write(n, a.extreme(f.target))
	f.tweens.start(f.session.tweens, n, a, f.target, f.duration, f.easing, nil)
	f.started = true
}

func (f *FadeIn) UpdateObjectState(n *Node, dt float32) {
	if f.elapsed < f.duration {
		f.elapsed += dt
	}
}

// Unbind jumps any unfinished tween to the recorded values.
func (f *FadeIn) Unbind(n *Node) {
	f.tweens.finish(n, f.target)
}

// FadeOut takes a node to the style's faded extreme once Start is called.
type FadeOut struct {
	BehaviourBase
	session  *Session
	style    FadeStyle
	duration float32
	easing   ease.TweenFunc

	// OnComplete, when set, runs once after the fade reaches its extreme.
	OnComplete func()

	node    *Node
	end     fadeState
	tweens  fadeTweens
	elapsed float32
	active  bool
}

// NewFadeOut creates a fade-out lasting duration seconds. A nil easing is linear.
func NewFadeOut(s *Session, style FadeStyle, duration float32, easing ease.TweenFunc) (*FadeOut, error) {
	if err := validateFade(style, duration); err != nil {
		return nil, err
	}
	return &FadeOut{session: s, style: style, duration: duration, easing: easing}, nil
}

func (f *FadeOut) Duration() float32 { return f.duration }

// Progress is unset until Start is called.
func (f *FadeOut) Progress() (float64, bool) {
	if !f.active {
		return 0, false
	}
	return progress(f.elapsed, f.duration), true
}

// Active reports whether Start has been called.
func (f *FadeOut) Active() bool {
	return f.active
}

// Start begins fading from the node's current values. Panics if the
// behaviour is not bound; a second call is a no-op.
func (f *FadeOut) Start() {
	if !f.Bound() {
		panic("tempo: fade-out started while not bound")
	}
	if f.active {
		return
	}
	f.active = true
	a := f.style.axes()
	f.end = a.extreme(snapshotFade(f.node))
	f.tweens.start(f.session.tweens, f.node, a, f.end, f.duration, f.easing, func() {
		if f.OnComplete != nil {
			f.OnComplete()
		}
	})
}

func (f *FadeOut) Bind(n *Node) {
	f.node = n
}

func (f *FadeOut) UpdateObjectState(n *Node, dt float32) {
	if f.active && f.elapsed < f.duration {
		f.elapsed += dt
	}
}

// Unbind jumps any unfinished tween to the faded extreme.
func (f *FadeOut) Unbind(n *Node) {
	if f.active {
		f.tweens.finish(n, f.end)
	}
	f.node = nil
}
