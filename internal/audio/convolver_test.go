package audio

import (
	"testing"

	"murasaki/internal/rng"
)

func TestConvolverMatchesDirectConvolution(t *testing.T) {
	const partition = 256
	r := rng.New()
	c := newTestContext()

	ir := NewBuffer(1, 700, testRate)
	for i := range ir.Channels[0] {
		ir.Channels[0][i] = r.Signed()
	}
	input := NewBuffer(1, 500, testRate)
	for i := range input.Channels[0] {
		input.Channels[0][i] = r.Signed()
	}

	conv, err := c.NewConvolver(partition)
	if err != nil {
		t.Fatal(err)
	}
	conv.SetBuffer(ir, false)
	src := c.NewBufferSource(input, false)
	src.Connect(conv)
	if err := src.Start(0); err != nil {
		t.Fatal(err)
	}
	l, rr := pullQuanta(c, conv, 16)

	x, h := input.Channels[0], ir.Channels[0]
	for n := 0; n+partition < len(l); n++ {
		var want float64
		for k := range x {
			if j := n - k; j >= 0 && j < len(h) {
				want += x[k] * h[j]
			}
		}
		got := l[n+partition]
		if !near(got, want, 1e-9) {
			t.Fatalf("y[%d] = %v, want %v", n, got, want)
		}
		if rr[n+partition] != got {
			t.Fatalf("mono impulse gave different channels at %d", n)
		}
	}
	if got := int(conv.Latency()*testRate + 0.5); got != partition {
		t.Errorf("latency = %d frames, want %d", got, partition)
	}
	for i := 0; i < partition; i++ {
		if l[i] != 0 {
			t.Fatalf("output before the partition latency at %d: %v", i, l[i])
		}
	}
}

func TestConvolverRejectsBadPartition(t *testing.T) {
	c := newTestContext()
	if _, err := c.NewConvolver(1000); err == nil {
		t.Fatal("expected error for a non power of two partition")
	}
}

func TestImpulseScale(t *testing.T) {
	b := constantBuffer(2, 0.5)
	got := impulseScale(b, testRate)
	want := 1 / 0.5 * 0.0012589254117941675
	if !near(got, want, 1e-12) {
		t.Fatalf("scale = %v, want %v", got, want)
	}
}
