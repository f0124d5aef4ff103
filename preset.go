package tempo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset   = errors.New("tempo: unknown preset")
	ErrUnknownEffect   = errors.New("tempo: unknown effect")
	ErrUnknownEasing   = errors.New("tempo: unknown easing")
	ErrUnknownProperty = errors.New("tempo: unknown property")
)

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"in-back":      ease.InBack,
	"out-back":     ease.OutBack,
	"in-out-back":  ease.InOutBack,
	"out-bounce":   ease.OutBounce,
	"out-elastic":  ease.OutElastic,
}

// EasingByName returns the easing function registered under name. The empty
// name is linear.
func EasingByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// Preset describes one effect in a preset file. Which fields apply depends
// on Effect.
type Preset struct {
	Effect   string  `yaml:"effect"` // fade-in | fade-out | blink | jitter | double-tap | swipe
	Style    string  `yaml:"style,omitempty"`
	Duration float32 `yaml:"duration,omitempty"`
	Easing   string  `yaml:"easing,omitempty"`

	// blink
	Count int `yaml:"count,omitempty"`

	// jitter
	Property string    `yaml:"property,omitempty"`
	Range    []float64 `yaml:"range,omitempty"`
	Relative bool      `yaml:"relative,omitempty"`
	Delay    float32   `yaml:"delay,omitempty"`
	Seed     *uint64   `yaml:"seed,omitempty"`

	// double-tap
	Window float32 `yaml:"window,omitempty"`
	Pulse  float64 `yaml:"pulse,omitempty"`

	// swipe
	MinDistance float64 `yaml:"min_distance,omitempty"`
	Travel      float64 `yaml:"travel,omitempty"`
}

const (
	defaultTapWindow     = 0.3
	defaultTapPulse      = 1.2
	defaultPulseDuration = 0.2
	defaultSwipeDuration = 0.25
)

// presetFile is the top-level YAML structure of a preset file.
type presetFile struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// PresetBook is a set of named effect presets.
type PresetBook struct {
	presets map[string]Preset
}

// LoadPresets parses a YAML preset file. Every preset is validated so that
// configuration errors surface at load time rather than when an effect is
// first used.
func LoadPresets(data []byte) (*PresetBook, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, fmt.Errorf("parse presets: no presets")
	}
	scratch := NewSession()
	for name, p := range f.Presets {
		if _, err := p.Build(scratch); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return &PresetBook{presets: f.Presets}, nil
}

// Names returns the preset names in sorted order.
func (b *PresetBook) Names() []string {
	names := make([]string, 0, len(b.presets))
	for name := range b.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns the preset registered under name.
func (b *PresetBook) Preset(name string) (Preset, bool) {
	p, ok := b.presets[name]
	return p, ok
}

// Build creates a fresh behaviour from the named preset. Behaviours are
// single-use, so call Build once per attachment.
func (b *PresetBook) Build(s *Session, name string) (Behaviour, error) {
	p, ok := b.presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p.Build(s)
}

// Build creates a behaviour bound to session s from the preset.
func (p Preset) Build(s *Session) (Behaviour, error) {
	switch p.Effect {
	case "fade-in", "fade-out", "blink":
		style := FadeOpacity
		if p.Style != "" {
			var err error
			if style, err = ParseFadeStyle(p.Style); err != nil {
				return nil, err
			}
		}
		fn, err := EasingByName(p.Easing)
		if err != nil {
			return nil, err
		}
		switch p.Effect {
		case "fade-in":
			return asBehaviour(NewFadeIn(s, style, p.Duration, fn))
		case "fade-out":
			return asBehaviour(NewFadeOut(s, style, p.Duration, fn))
		}
		return asBehaviour(NewBlink(s, p.Count, p.Duration, style))
	case "jitter":
		return p.buildJitter()
	case "double-tap":
		window := orDefault(p.Window, defaultTapWindow)
		pulse := p.Pulse
		if pulse == 0 {
			pulse = defaultTapPulse
		}
		return asBehaviour(NewDoubleTap(s, window, pulse, orDefault(p.Duration, defaultPulseDuration)))
	case "swipe":
		travel := p.Travel
		if travel == 0 {
			travel = 1
		}
		return asBehaviour(NewSwipe(s, p.MinDistance, travel, orDefault(p.Duration, defaultSwipeDuration)))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, p.Effect)
}

func (p Preset) buildJitter() (Behaviour, error) {
	var rnd func() float64
	if p.Seed != nil {
		rnd = Seeded(*p.Seed)
	}
	if prop, ok := FloatProperty(p.Property); ok {
		if len(p.Range) != 1 {
			return nil, rangeError(p, 1)
		}
		cfg := JitterConfig[Float]{Range: Float(p.Range[0]), Relative: p.Relative, Delay: p.Delay}
		return asBehaviour(NewJitterBehaviour(prop, cfg, rnd))
	}
	if prop, ok := Vec2Property(p.Property); ok {
		var r Vec2
		switch len(p.Range) {
		case 1:
			r = Vec2{p.Range[0], p.Range[0]}
		case 2:
			r = Vec2{p.Range[0], p.Range[1]}
		default:
			return nil, rangeError(p, 2)
		}
		cfg := JitterConfig[Vec2]{Range: r, Relative: p.Relative, Delay: p.Delay}
		return asBehaviour(NewJitterBehaviour(prop, cfg, rnd))
	}
	if prop, ok := ColorProperty(p.Property); ok {
		if len(p.Range) != 4 {
			return nil, rangeError(p, 4)
		}
		r := Color{p.Range[0], p.Range[1], p.Range[2], p.Range[3]}
		cfg := JitterConfig[Color]{Range: r, Relative: p.Relative, Delay: p.Delay}
		return asBehaviour(NewJitterBehaviour(prop, cfg, rnd))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, p.Property)
}

func rangeError(p Preset, want int) error {
	return fmt.Errorf("jitter %s: range needs %d components, got %d", p.Property, want, len(p.Range))
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

// asBehaviour converts a constructor result without leaking a typed nil.
func asBehaviour[B Behaviour](b B, err error) (Behaviour, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}
