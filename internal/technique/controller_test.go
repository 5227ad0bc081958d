package technique

import (
	"math"
	"testing"

	"github.com/pion/logging"

	"murasaki/internal/rng"
)

type call struct {
	label     Label
	immediate bool
}

type recordingSink struct{ calls []call }

func (s *recordingSink) SetTechnique(l Label, immediate bool) {
	s.calls = append(s.calls, call{l, immediate})
}

func newTestController(n int) (*Controller, *recordingSink) {
	sink := &recordingSink{}
	c := NewController(sink, NewTargets(n), rng.New(), logging.NewDefaultLoggerFactory())
	return c, sink
}

func TestControllerDebounce(t *testing.T) {
	c, sink := newTestController(100)
	if c.Update(Neutral) {
		t.Fatal("neutral while neutral should not change anything")
	}
	if len(sink.calls) != 0 {
		t.Fatalf("audio called %d times on a no-op", len(sink.calls))
	}

	if !c.Update(Void) {
		t.Fatal("Void did not apply")
	}
	before := append([]float32(nil), c.Targets().Positions...)
	for i := 0; i < 5; i++ {
		if c.Update(Void) {
			t.Fatal("repeated Void applied again")
		}
	}
	if len(sink.calls) != 1 || sink.calls[0] != (call{Void, false}) {
		t.Fatalf("audio calls = %v", sink.calls)
	}
	for i, v := range c.Targets().Positions {
		if v != before[i] {
			t.Fatal("targets regenerated on a repeated label")
		}
	}
}

func TestControllerTransition(t *testing.T) {
	c, sink := newTestController(1000)
	c.Update(Shrine)
	if c.Label() != Shrine || c.Shake() != 0.28 {
		t.Fatalf("label %v shake %v", c.Label(), c.Shake())
	}
	if c.Presentation().Name != "Domain Expansion - Malevolent Shrine" {
		t.Fatalf("name %q", c.Presentation().Name)
	}
	// The shrine's last 40% collapses to the origin.
	for i := 600; i < 1000; i++ {
		if p := c.Targets().At(i); p != (Point{}) {
			t.Fatalf("target %d = %+v, want collapsed", i, p)
		}
	}

	c.Update(Neutral)
	if c.Shake() != 0 {
		t.Fatalf("neutral shake %v", c.Shake())
	}
	want := []call{{Shrine, false}, {Neutral, false}}
	if len(sink.calls) != 2 || sink.calls[0] != want[0] || sink.calls[1] != want[1] {
		t.Fatalf("audio calls = %v", sink.calls)
	}
}

func TestFillCallsGeneratorOncePerIndex(t *testing.T) {
	const n = 2000
	targets := NewTargets(n)
	seen := make([]int, n)
	targets.fillWith(func(i, total int, _ *rng.Rand) Point {
		if total != n {
			t.Fatalf("generator got n=%d", total)
		}
		seen[i]++
		return Point{X: float64(i), S: 1}
	}, rng.New())
	for i, k := range seen {
		if k != 1 {
			t.Fatalf("index %d generated %d times", i, k)
		}
		if targets.At(i).X != float64(i) {
			t.Fatalf("index %d stored out of place", i)
		}
	}
}

func TestGeneratorShapes(t *testing.T) {
	const n = 20000
	r := rng.New()
	targets := NewTargets(n)

	targets.Fill(Void, r)
	for i := 0; i < 3000; i++ {
		p := targets.At(i)
		if d := math.Hypot(p.X, p.Y); math.Abs(d-26) > 1e-3 || math.Abs(p.Z) > 0.5 {
			t.Fatalf("void ring point %d at radius %v z %v", i, d, p.Z)
		}
	}
	for i := 3000; i < n; i++ {
		p := targets.At(i)
		if d := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z); d < 30-1e-3 || d > 120+1e-3 {
			t.Fatalf("void shell point %d at radius %v", i, d)
		}
	}

	targets.Fill(Neutral, r)
	for i := 0; i < n; i++ {
		p := targets.At(i)
		d := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
		if i < 1000 && (d < 15-1e-3 || d > 35+1e-3) {
			t.Fatalf("neutral shell point %d at radius %v", i, d)
		}
		if i >= 1000 && p != (Point{}) {
			t.Fatalf("neutral point %d not collapsed: %+v", i, p)
		}
	}

	targets.Fill(Red, r)
	for i := 2000; i < n; i++ {
		p := targets.At(i)
		tt := float64(i) / n
		if d := math.Hypot(p.X, p.Y); math.Abs(d-(2+tt*40)) > 1e-3 {
			t.Fatalf("red spiral point %d at radius %v", i, d)
		}
	}

	targets.Fill(Flip, r)
	for i := 0; i < 4400; i++ {
		p := targets.At(i)
		if math.Hypot(p.X, p.Z) > 3.1+1e-3 || p.Y < -18-1e-3 || p.Y > 42+1e-3 {
			t.Fatalf("flip column point %d = %+v", i, p)
		}
	}
}
