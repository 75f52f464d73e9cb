package rng

import (
	"math"
	"testing"
)

func TestUniform01Range(t *testing.T) {
	g := New(42)
	for i := 0; i < 10000; i++ {
		u := g.Uniform01()
		if u < 0 || u >= 1 {
			t.Fatalf("Uniform01 out of range: %v", u)
		}
	}
}

func TestDeterministicStreamPerSeed(t *testing.T) {
	g1 := New(7)
	g2 := New(7)
	for i := 0; i < 100; i++ {
		a, b := g1.Uniform01(), g2.Uniform01()
		if a != b {
			t.Fatalf("streams diverged at draw %d: %v != %v", i, a, b)
		}
	}
}

func TestUnitSphereDirectionIsUnit(t *testing.T) {
	g := New(1)
	for i := 0; i < 1000; i++ {
		v := g.UnitSphereDirection()
		n := v.Norm()
		if math.Abs(n-1) > 1e-9 {
			t.Fatalf("direction %v not unit length: %v", v, n)
		}
	}
}

func TestTruncatedGaussianBounds(t *testing.T) {
	g := New(99)
	for i := 0; i < 1000; i++ {
		x := g.TruncatedGaussian(0, 1, -0.5, 0.5)
		if x < -0.5 || x > 0.5 {
			t.Fatalf("value %v outside truncation bounds", x)
		}
	}
}
