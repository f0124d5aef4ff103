package tempo

import "github.com/hajimehoshi/ebiten/v2"

// FrameDelta returns the length of one Ebitengine tick in seconds.
// Ebitengine runs Update at a fixed TPS, so the delta is constant between
// SetTPS calls.
func FrameDelta() float32 {
	tps := ebiten.TPS()
	if tps <= 0 {
		return 0
	}
	return float32(1.0 / float64(tps))
}
