package tempo

import (
	"errors"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - action: tap
    node: button
    x: 100
    y: 200
  - action: wait
    frames: 3
  - action: swipe
    node: card
    toX: 50
`)

	runner, err := LoadScript(data, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[0]; st.Action != "tap" || st.Node != "button" || st.X != 100 || st.Y != 200 {
		t.Errorf("step 0 mismatch: %+v", st)
	}
	if st := runner.steps[1]; st.Action != "wait" || st.Frames != 3 {
		t.Errorf("step 1 mismatch: %+v", st)
	}
	if st := runner.steps[2]; st.ToX != 50 {
		t.Errorf("step 2 mismatch: %+v", st)
	}
}

func TestLoadScript_JSON(t *testing.T) {
	data := []byte(`{"steps": [{"action": "double-tap", "node": "b", "x": 1, "y": 2}]}`)
	runner, err := LoadScript(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if runner.steps[0].Action != "double-tap" || runner.steps[0].Y != 2 {
		t.Errorf("step mismatch: %+v", runner.steps[0])
	}
}

func TestLoadScript_Errors(t *testing.T) {
	book, err := LoadPresets([]byte(presetYAML))
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name string
		data string
		book *PresetBook
		want error
	}{
		{"invalid", `steps: [`, nil, nil},
		{"empty", `{"steps": []}`, nil, nil},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`, nil, ErrUnknownAction},
		{"missing node", `{"steps": [{"action": "tap"}]}`, nil, nil},
		{"attach without book", `{"steps": [{"action": "attach", "node": "n", "preset": "appear"}]}`, nil, nil},
		{"unknown preset", `{"steps": [{"action": "attach", "node": "n", "preset": "nope"}]}`, book, ErrUnknownPreset},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tc.data), tc.book)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestScriptRunner_Wait(t *testing.T) {
	s := NewSession()
	n := NewNode("button")
	s.Attach(n)
	h := &gestureLog{}
	n.Behaviours().Add(h)

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "tap", "node": "button"}
	]}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.SetScriptRunner(runner)

	// Ticks 1-3 wait; tick 4 taps and the script ends.
	for i := 1; i <= 3; i++ {
		s.Tick(0.1)
		if runner.Done() || len(h.got) != 0 {
			t.Fatalf("tick %d: done=%v gestures=%d", i, runner.Done(), len(h.got))
		}
	}
	s.Tick(0.1)
	if !runner.Done() || runner.Err() != nil {
		t.Fatalf("done=%v err=%v", runner.Done(), runner.Err())
	}
	if len(h.got) != 1 || h.got[0].Kind != GestureTap {
		t.Errorf("gestures = %+v, want one tap delivered in the same tick", h.got)
	}
}

func TestScriptRunner_DrivesEffects(t *testing.T) {
	book, err := LoadPresets([]byte(presetYAML))
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession()
	n := NewNode("card")
	s.Attach(n)

	runner, err := LoadScript([]byte(`
steps:
  - {action: attach, node: card, preset: like}
  - {action: attach, node: card, preset: vanish}
  - {action: double-tap, node: card}
  - {action: start, node: card}
  - {action: wait, frames: 10}
`), book)
	if err != nil {
		t.Fatal(err)
	}
	s.SetScriptRunner(runner)
	for i := 0; i < 20 && !runner.Done(); i++ {
		s.Tick(0.1)
	}

	if err := runner.Err(); err != nil {
		t.Fatal(err)
	}
	if d := GetBehaviour[*DoubleTap](n.Behaviours()); d == nil || d.Count() != 1 {
		t.Error("double tap should have been recognized")
	}
	if n.Alpha != 0 {
		t.Errorf("Alpha = %v, want the fade-out finished", n.Alpha)
	}
}

func TestScriptRunner_UnknownNodeStops(t *testing.T) {
	s := NewSession()
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "tap", "node": "ghost"},
		{"action": "wait", "frames": 5}
	]}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.SetScriptRunner(runner)
	s.Tick(0.1)

	if !runner.Done() || !errors.Is(runner.Err(), ErrUnknownNode) {
		t.Errorf("done=%v err=%v, want stop on ErrUnknownNode", runner.Done(), runner.Err())
	}
}

func TestScriptRunner_Dispose(t *testing.T) {
	s := NewSession()
	n := NewNode("doomed")
	s.Attach(n)
	runner, _ := LoadScript([]byte(`{"steps": [{"action": "dispose", "node": "doomed"}]}`), nil)
	s.SetScriptRunner(runner)
	s.Tick(0.1)

	if !n.IsDisposed() || len(s.Nodes()) != 0 {
		t.Error("dispose step should dispose the node and the session should prune it")
	}
}
