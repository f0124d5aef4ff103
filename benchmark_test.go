package tempo

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// setupBenchSession creates a Session with n attached nodes.
func setupBenchSession(n int) (*Session, []*Node) {
	s := NewSession()
	nodes := make([]*Node, n)
	for i := range nodes {
		nd := NewNode("bench")
		nd.X = float64(i%100) * 40
		nd.Y = float64(i/100) * 40
		s.Attach(nd)
		nodes[i] = nd
	}
	return s, nodes
}

// --- Tween Benchmarks ---

func BenchmarkTweenerAdvance_10000(b *testing.B) {
	e := NewTweener()
	nodes := make([]*Node, 10000)
	for i := range nodes {
		nodes[i] = NewNode("tw")
		Tween(e, nodes[i], NodePosition, Vec2{500, 500}, 1e6, ease.InOutQuad, nil)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Advance(1.0 / 60)
	}
}

func BenchmarkTweenReplace(b *testing.B) {
	e := NewTweener()
	n := NewNode("replace")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Tween(e, n, NodeX, Float(i%100), 1, nil, nil)
	}
}

// --- Timeline Benchmarks ---

func BenchmarkTimelineAdvance_1000Pending(b *testing.B) {
	tl := NewTimeline()
	for i := 0; i < 1000; i++ {
		tl.Schedule(1e6, func() {})
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tl.Advance(1.0 / 60)
	}
}

// --- Session Benchmarks ---

func BenchmarkSessionTick_10000Jitter(b *testing.B) {
	s, nodes := setupBenchSession(10000)
	for i, n := range nodes {
		j, err := NewJitterBehaviour(NodePosition, JitterConfig[Vec2]{Range: Vec2{2, 2}}, Seeded(uint64(i)))
		if err != nil {
			b.Fatal(err)
		}
		n.Behaviours().Add(j)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Tick(1.0 / 60)
	}
}

func BenchmarkSessionTick_1000Blink(b *testing.B) {
	s, nodes := setupBenchSession(1000)
	for _, n := range nodes {
		bl, err := NewBlink(s, 1<<30, 1<<29, FadeZoomAndFade)
		if err != nil {
			b.Fatal(err)
		}
		n.Behaviours().Add(bl)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Tick(1.0 / 60)
	}
}
