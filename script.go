package tempo

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownAction is returned for a script step with an unsupported action.
	ErrUnknownAction = errors.New("tempo: unknown script action")
	// ErrUnknownNode is reported when a script step names a node that is not
	// attached to the session.
	ErrUnknownNode = errors.New("tempo: unknown node")
)

// scriptStep is a single action in an effect script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Node   string  `yaml:"node,omitempty"`
	Preset string  `yaml:"preset,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// script is the top-level structure of a script file. JSON is accepted too,
// being a subset of YAML.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"tap": true, "double-tap": true, "swipe": true,
	"attach": true, "start": true, "dispose": true, "wait": false,
}

// ScriptRunner plays a sequence of synthetic gestures and effect commands
// across ticks, for automated testing of effect setups. Attach it to a
// Session via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	presets   *PresetBook
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a script. presets resolves "attach" steps and may be nil
// when the script has none.
func LoadScript(data []byte, presets *PresetBook) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		needsNode, ok := scriptActions[st.Action]
		if !ok {
			return nil, fmt.Errorf("step %d: %w: %q", i, ErrUnknownAction, st.Action)
		}
		if needsNode && st.Node == "" {
			return nil, fmt.Errorf("step %d: %s needs a node", i, st.Action)
		}
		if st.Action == "attach" {
			if presets == nil {
				return nil, fmt.Errorf("step %d: attach without a preset book", i)
			}
			if _, ok := presets.Preset(st.Preset); !ok {
				return nil, fmt.Errorf("step %d: %w: %q", i, ErrUnknownPreset, st.Preset)
			}
		}
	}
	return &ScriptRunner{steps: sc.Steps, presets: presets}, nil
}

// SetScriptRunner attaches a runner to the session. The runner executes at
// the start of each Tick, so injected gestures are delivered the same tick.
func (s *Session) SetScriptRunner(r *ScriptRunner) {
	s.script = r
}

// Done reports whether every step has run, or the script stopped on an error.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the error that stopped the script, if any.
func (r *ScriptRunner) Err() error {
	return r.err
}

// step advances the runner by one tick.
func (r *ScriptRunner) step(s *Session) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if err := r.run(s, st); err != nil {
		r.err = fmt.Errorf("step %d (%s): %w", r.cursor-1, st.Action, err)
		r.done = true
		return
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) run(s *Session, st scriptStep) error {
	if st.Action == "wait" {
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
		return nil
	}

	n := s.NodeByName(st.Node)
	if n == nil {
		return fmt.Errorf("%w: %q", ErrUnknownNode, st.Node)
	}
	switch st.Action {
	case "tap":
		s.InjectTap(n.ID, st.X, st.Y)
	case "double-tap":
		s.InjectDoubleTap(n.ID, st.X, st.Y)
	case "swipe":
		s.InjectSwipe(n.ID, st.X, st.Y, st.ToX, st.ToY)
	case "attach":
		b, err := r.presets.Build(s, st.Preset)
		if err != nil {
			return err
		}
		n.behaviours.Add(b)
	case "start":
		f := GetBehaviour[*FadeOut](n.behaviours)
		if f == nil {
			return fmt.Errorf("node %q has no fade-out", st.Node)
		}
		f.Start()
	case "dispose":
		n.Dispose()
	}
	return nil
}
