package audio

import (
	"context"
	"errors"
	"testing"
)

func TestAtRunsInOrderWithoutLock(t *testing.T) {
	c := newTestContext()
	var order []int
	var seen float64
	c.At(0.02, func() { order = append(order, 2) })
	c.At(0.01, func() {
		order = append(order, 1)
		seen = c.CurrentTime()
	})
	c.At(5, func() { order = append(order, 3) })

	advance(c, 0.05)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v, want [1 2]", order)
	}
	if seen < 0.01 {
		t.Fatalf("event ran at %v, before its time", seen)
	}
}

func TestResumeOpensSinkOnce(t *testing.T) {
	c := newTestContext()
	sink := &fakeSink{}
	for i := 0; i < 3; i++ {
		if err := c.Resume(context.Background(), sink); err != nil {
			t.Fatal(err)
		}
	}
	if sink.opens != 1 {
		t.Fatalf("sink opened %d times", sink.opens)
	}
	if c.State() != Running {
		t.Fatalf("state = %v", c.State())
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if sink.closes != 1 || c.State() != Closed {
		t.Fatalf("closes = %d, state = %v", sink.closes, c.State())
	}
	if err := c.Resume(context.Background(), sink); !errors.Is(err, ErrClosed) {
		t.Fatalf("resume after close = %v", err)
	}
}

func TestResumeFailureStaysSuspended(t *testing.T) {
	c := newTestContext()
	err := c.Resume(context.Background(), &fakeSink{err: errDevice})
	if !errors.Is(err, errDevice) {
		t.Fatalf("err = %v, want wrapped device error", err)
	}
	if c.State() != Suspended {
		t.Fatalf("state = %v after failure", c.State())
	}
}

func TestReadFillsWholeFrames(t *testing.T) {
	c := newTestContext()
	o := c.NewOscillator(Sine, 440)
	g := c.NewGain(0.5)
	o.Connect(g)
	g.Connect(c.Destination())
	if err := o.Start(0); err != nil {
		t.Fatal(err)
	}
	p := make([]byte, 8*300+5)
	n, err := c.Read(p)
	if err != nil || n != 8*300 {
		t.Fatalf("Read = %d, %v", n, err)
	}
	if c.CurrentTime() != float64(3*Quantum)/testRate {
		t.Fatalf("clock at %v after 300 frames", c.CurrentTime())
	}
	var nonzero bool
	for _, b := range p[:n] {
		if b != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Fatal("Read produced silence")
	}
}

func TestSoftSatIsContinuous(t *testing.T) {
	if softSat(1) != softSat(1+1e-9) || softSat(-1) != softSat(-1-1e-9) {
		t.Fatal("discontinuity at the clip points")
	}
	if softSat(0) != 0 || softSat(0.1) >= 0.1 {
		t.Fatal("unexpected small-signal response")
	}
}
