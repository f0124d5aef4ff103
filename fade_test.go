package tempo

import (
	"errors"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestFadeInZoomAndFade(t *testing.T) {
	s := NewSession()
	n := NewNode("card")
	m := s.Attach(n)

	f, err := NewFadeIn(s, FadeZoomAndFade, 1.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Progress(); ok {
		t.Error("progress should be unset before bind")
	}
	m.Add(f)

	if n.Alpha != 0 || n.ScaleX != 0 || n.ScaleY != 0 {
		t.Fatalf("after bind: alpha=%v scale=(%v, %v), want all 0", n.Alpha, n.ScaleX, n.ScaleY)
	}
	if p, ok := f.Progress(); !ok || p != 0 {
		t.Errorf("Progress = %v, %v; want 0, true", p, ok)
	}

	s.Tick(0.5)
	if n.Alpha <= 0 || n.Alpha >= 1 {
		t.Errorf("alpha at halfway = %v, want strictly between 0 and 1", n.Alpha)
	}
	s.Tick(0.5)

	if n.Alpha != 1 || n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("after 1s: alpha=%v scale=(%v, %v), want all 1", n.Alpha, n.ScaleX, n.ScaleY)
	}
	if p, ok := f.Progress(); !ok || p != 1 {
		t.Errorf("Progress = %v, %v; want 1, true", p, ok)
	}
	s.Tick(0.5)
	if p, _ := f.Progress(); p != 1 {
		t.Errorf("Progress = %v after the end, want clamped to 1", p)
	}
}

func TestFadeInStyles(t *testing.T) {
	for _, tc := range []struct {
		style      FadeStyle
		alpha      float64
		scaleX     float64
		scaleY     float64
		touchAlpha bool
	}{
		{FadeOpacity, 0, 3, 2, true},
		{FadeZoom, 0.8, 0, 0, false},
		{FadeZoomAndFade, 0, 0, 0, true},
		{FadeExpand, 0.8, 6, 4, false},
		{FadeExpandAndFade, 0, 6, 4, true},
	} {
		t.Run(tc.style.String(), func(t *testing.T) {
			s := NewSession()
			n := NewNode("styled")
			n.Alpha = 0.8
			n.ScaleX, n.ScaleY = 3, 2
			m := s.Attach(n)

			f, err := NewFadeIn(s, tc.style, 0.5, ease.OutQuad)
			if err != nil {
				t.Fatal(err)
			}
			m.Add(f)
			if n.Alpha != tc.alpha || n.ScaleX != tc.scaleX || n.ScaleY != tc.scaleY {
				t.Errorf("start = alpha %v scale (%v, %v), want %v (%v, %v)",
					n.Alpha, n.ScaleX, n.ScaleY, tc.alpha, tc.scaleX, tc.scaleY)
			}

			s.Tick(0.25)
			s.Tick(0.25)
			if n.Alpha != 0.8 || n.ScaleX != 3 || n.ScaleY != 2 {
				t.Errorf("end = alpha %v scale (%v, %v), want the recorded values",
					n.Alpha, n.ScaleX, n.ScaleY)
			}
		})
	}
}

func TestFadeInUnbindFinishesToOriginal(t *testing.T) {
	s := NewSession()
	n := NewNode("early")
	n.Alpha = 0.6
	m := s.Attach(n)

	f, _ := NewFadeIn(s, FadeExpandAndFade, 1, nil)
	m.Add(f)
	s.Tick(0.25)
	m.Remove(f)

	if n.Alpha != 0.6 || n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("after unbind: alpha=%v scale=(%v, %v)", n.Alpha, n.ScaleX, n.ScaleY)
	}
	if s.Tweens().Len() != 0 {
		t.Errorf("tweens left running: %d", s.Tweens().Len())
	}
}

func TestFadeOutWaitsForStart(t *testing.T) {
	s := NewSession()
	n := NewNode("exit")
	m := s.Attach(n)

	f, err := NewFadeOut(s, FadeOpacity, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	expectPanic(t, "not bound", f.Start)

	m.Add(f)
	s.Tick(0.5)
	if _, ok := f.Progress(); ok {
		t.Error("progress should be unset before Start")
	}
	if n.Alpha != 1 || f.Active() {
		t.Fatal("fade-out must not run before Start")
	}

	calls := 0
	f.OnComplete = func() { calls++ }
	f.Start()
	f.Start()
	s.Tick(0.5)
	if p, ok := f.Progress(); !ok || p != 0.5 {
		t.Errorf("Progress = %v, %v; want 0.5, true", p, ok)
	}
	s.Tick(0.5)
	s.Tick(0.5)

	if n.Alpha != 0 {
		t.Errorf("Alpha = %v, want 0", n.Alpha)
	}
	if calls != 1 {
		t.Errorf("OnComplete ran %d times, want 1", calls)
	}
}

func TestFadeOutCompletesOnceForTwoAxes(t *testing.T) {
	s := NewSession()
	n := NewNode("both")
	m := s.Attach(n)

	f, _ := NewFadeOut(s, FadeZoomAndFade, 0.5, ease.InCubic)
	calls := 0
	f.OnComplete = func() {
		calls++
		if n.Alpha != 0 || n.ScaleX != 0 {
			t.Error("OnComplete should run after both axes reach the extreme")
		}
	}
	m.Add(f)
	f.Start()
	s.Tick(0.25)
	s.Tick(0.25)
	s.Tick(0.25)

	if calls != 1 {
		t.Errorf("OnComplete ran %d times, want 1", calls)
	}
}

func TestFadeOutUnbindFinishesToExtreme(t *testing.T) {
	s := NewSession()
	n := NewNode("cut")
	n.ScaleX, n.ScaleY = 2, 2
	m := s.Attach(n)

	f, _ := NewFadeOut(s, FadeExpand, 1, nil)
	m.Add(f)
	f.Start()
	s.Tick(0.25)
	m.Remove(f)

	if n.ScaleX != 4 || n.ScaleY != 4 {
		t.Errorf("scale = (%v, %v), want (4, 4)", n.ScaleX, n.ScaleY)
	}
}

func TestFadeOutUnbindBeforeStartLeavesNode(t *testing.T) {
	s := NewSession()
	n := NewNode("idle")
	m := s.Attach(n)

	f, _ := NewFadeOut(s, FadeZoomAndFade, 1, nil)
	m.Add(f)
	m.Remove(f)
	if n.Alpha != 1 || n.ScaleX != 1 {
		t.Error("an unstarted fade-out must not touch the node")
	}
}

func TestFadeConstructorErrors(t *testing.T) {
	s := NewSession()
	if _, err := NewFadeIn(s, FadeOpacity, 0, nil); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration: err = %v", err)
	}
	if _, err := NewFadeOut(s, FadeOpacity, -1, nil); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("negative duration: err = %v", err)
	}
	if _, err := NewFadeIn(s, FadeStyle(42), 1, nil); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("unknown style: err = %v", err)
	}
}

func TestParseFadeStyle(t *testing.T) {
	for s := FadeOpacity; s < fadeStyleCount; s++ {
		got, err := ParseFadeStyle(s.String())
		if err != nil || got != s {
			t.Errorf("ParseFadeStyle(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseFadeStyle("dissolve"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("err = %v, want ErrUnknownStyle", err)
	}
	if got := FadeStyle(9).String(); got != "FadeStyle(9)" {
		t.Errorf("String = %q", got)
	}
}

func TestFadeInReplacesRunningTween(t *testing.T) {
	s := NewSession()
	n := NewNode("override")
	m := s.Attach(n)

	Tween(s.Tweens(), n, NodeOpacity, 0.2, 5, nil, nil)
	f, _ := NewFadeIn(s, FadeOpacity, 0.5, nil)
	m.Add(f)
	s.Tick(0.25)
	s.Tick(0.25)

	if math.Abs(n.Alpha-1) > 1e-9 {
		t.Errorf("Alpha = %v, want the fade to own the opacity slot", n.Alpha)
	}
}

func TestFadeOutStartAfterUnbindPanics(t *testing.T) {
	s := NewSession()
	m := s.Attach(NewNode("gone"))
	f, _ := NewFadeOut(s, FadeOpacity, 1, nil)
	m.Add(f)
	m.Remove(f)
	expectPanic(t, "not bound", f.Start)
}
