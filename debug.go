package tempo

import (
	"fmt"
	"time"
)

// debugStats holds per-tick timing and counts.
// Only populated when Session.debug is true.
type debugStats struct {
	timelineTime  time.Duration
	behaviourTime time.Duration
	tweenTime     time.Duration
	timersFired   int
	timersPending int
	tweensActive  int
	behaviours    int
	nodes         int
}

// debugLog prints timing and counts to the debug writer.
func (s *Session) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.timelineTime + stats.behaviourTime + stats.tweenTime
	_, _ = fmt.Fprintf(s.debugOut,
		"[tempo] timeline: %v | behaviours: %v | tweens: %v | total: %v\n",
		stats.timelineTime, stats.behaviourTime, stats.tweenTime, total)
	_, _ = fmt.Fprintf(s.debugOut,
		"[tempo] nodes: %d | behaviours: %d | tweens: %d | timers: %d pending, %d fired\n",
		stats.nodes, stats.behaviours, stats.tweensActive, stats.timersPending, stats.timersFired)
}

// debugMaxTweens is the active tween count above which a warning is printed.
// A count this high usually means tweens are started every frame and never
// replaced.
const debugMaxTweens = 4096

func (s *Session) debugCheckTweenCount() {
	if n := s.tweens.Len(); n > debugMaxTweens {
		_, _ = fmt.Fprintf(s.debugOut, "[tempo] warning: %d active tweens (threshold %d)\n",
			n, debugMaxTweens)
	}
}

// debugMaxBehaviours is the per-node behaviour count above which a warning
// is printed.
const debugMaxBehaviours = 64

func (s *Session) debugCheckBehaviourCount(m *BehaviourManager) {
	if len(m.entries) > debugMaxBehaviours {
		_, _ = fmt.Fprintf(s.debugOut, "[tempo] warning: node %q has %d behaviours (threshold %d)\n",
			m.node.Name, len(m.entries), debugMaxBehaviours)
	}
}
