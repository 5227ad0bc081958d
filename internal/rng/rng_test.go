package rng

import (
	"math"
	"testing"
)

func TestRanges(t *testing.T) {
	r := New()
	for i := 0; i < 10000; i++ {
		if v := r.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64 out of range: %v", v)
		}
		if v := r.Signed(); v < -1 || v >= 1 {
			t.Fatalf("Signed out of range: %v", v)
		}
		if v := r.Angle(); v < 0 || v >= 2*math.Pi {
			t.Fatalf("Angle out of range: %v", v)
		}
		if v := r.Polar(); v < 0 || v > 3.1416 {
			t.Fatalf("Polar out of range: %v", v)
		}
	}
}

func TestNotConstant(t *testing.T) {
	r := New()
	first := r.Float64()
	for i := 0; i < 100; i++ {
		if r.Float64() != first {
			return
		}
	}
	t.Error("generator returned the same value 101 times")
}
