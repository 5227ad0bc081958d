package audio

import (
	"errors"
	"math"
	"testing"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestLinearRamp(t *testing.T) {
	c := newTestContext()
	p := c.NewGain(0).Gain
	p.LinearRampToValueAtTime(1, 1)

	advance(c, 0.5)
	now := c.CurrentTime()
	if v := p.Value(); !near(v, now, 1e-9) {
		t.Fatalf("value at %.4f = %v, want %v", now, v, now)
	}
	advance(c, 0.6)
	if v := p.Value(); v != 1 {
		t.Fatalf("value after ramp = %v, want 1", v)
	}
}

func TestCancelAndHold(t *testing.T) {
	c := newTestContext()
	g := c.NewGain(0)
	g.Connect(c.Destination())
	p := g.Gain
	p.LinearRampToValueAtTime(1, 1)

	advance(c, 0.25)
	now := c.CurrentTime()
	p.CancelAndHoldAtTime(now)
	advance(c, 1)
	if v := p.Value(); !near(v, now, 1e-9) {
		t.Fatalf("held value = %v, want %v", v, now)
	}
	if n := len(p.Ramps()); n > 1 {
		t.Errorf("%d ramps pending after hold, want at most 1", n)
	}
}

func TestRampToFromMidRamp(t *testing.T) {
	c := newTestContext()
	p := c.NewGain(0).Gain
	p.LinearRampToValueAtTime(1, 1)
	advance(c, 0.5)
	start := p.Value()

	p.RampTo(0.2, 0.45)
	if v := p.Value(); !near(v, start, 1e-9) {
		t.Fatalf("RampTo jumped: %v -> %v", start, v)
	}
	advance(c, 0.5)
	if v := p.Value(); !near(v, 0.2, 1e-12) {
		t.Fatalf("RampTo landed on %v, want 0.2", v)
	}
}

func TestExponentialRamp(t *testing.T) {
	c := newTestContext()
	p := c.NewGain(1).Gain
	if err := p.ExponentialRampToValueAtTime(0.01, 1); err != nil {
		t.Fatal(err)
	}
	advance(c, 0.5)
	now := c.CurrentTime()
	want := math.Pow(0.01, now)
	if v := p.Value(); !near(v, want, 1e-9) {
		t.Fatalf("value = %v, want %v", v, want)
	}
	if err := p.ExponentialRampToValueAtTime(0, 2); !errors.Is(err, ErrZeroTarget) {
		t.Fatalf("zero target err = %v", err)
	}
}

func TestSetTarget(t *testing.T) {
	c := newTestContext()
	p := c.NewGain(0).Gain
	if err := p.SetTargetAtTime(1, 0, 0.1); err != nil {
		t.Fatal(err)
	}
	advance(c, 0.3)
	now := c.CurrentTime()
	want := 1 - math.Exp(-now/0.1)
	if v := p.Value(); !near(v, want, 1e-9) {
		t.Fatalf("value = %v, want %v", v, want)
	}
	if err := p.SetTargetAtTime(1, 0, 0); !errors.Is(err, ErrTimeConstant) {
		t.Fatalf("tau 0 err = %v", err)
	}
}

func TestTargetInterruptsRamp(t *testing.T) {
	c := newTestContext()
	p := c.NewGain(0).Gain
	p.LinearRampToValueAtTime(1, 1)
	advance(c, 0.5)
	now := c.CurrentTime()
	if err := p.SetTargetAtTime(0, now, 0.2); err != nil {
		t.Fatal(err)
	}
	if v := p.Value(); !near(v, now, 1e-9) {
		t.Fatalf("target did not start from ramp value: %v", v)
	}
	advance(c, 2)
	if v := p.Value(); v > 0.01 {
		t.Fatalf("target did not take over: %v", v)
	}
}

func TestModulationSumsIntoParam(t *testing.T) {
	c := newTestContext()
	g := c.NewGain(0.5)
	src := c.NewBufferSource(constantBuffer(1, 0.25), true)
	src.ConnectParam(g.Gain)
	if err := src.Start(0); err != nil {
		t.Fatal(err)
	}
	c.mu.Lock()
	c.pull(g)
	v := g.Gain.at(10)
	c.mu.Unlock()
	if !near(v, 0.75, 1e-12) {
		t.Fatalf("modulated gain = %v, want 0.75", v)
	}

	src.Disconnect()
	if src.Connected() {
		t.Fatal("source still connected")
	}
	c.mu.Lock()
	c.quantum++
	c.pull(g)
	v = g.Gain.at(10)
	c.mu.Unlock()
	if v != 0.5 {
		t.Fatalf("gain after disconnect = %v, want 0.5", v)
	}
}

func constantBuffer(channels int, v float64) *Buffer {
	b := NewBuffer(channels, 64, testRate)
	for _, ch := range b.Channels {
		for i := range ch {
			ch[i] = v
		}
	}
	return b
}
