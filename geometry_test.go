package main

import (
	"math"
	"testing"
)

func TestWrap(t *testing.T) {
	cases := []struct{ v, m, want float64 }{
		{5, 10, 5},
		{-1, 10, 9},
		{10, 10, 0},
		{-10.5, 10, 9.5},
		{25, 10, 5},
	}
	for _, c := range cases {
		got := Wrap(c.v, c.m)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Wrap(%v, %v) = %v, want %v", c.v, c.m, got, c.want)
		}
		if got < 0 || got >= c.m {
			t.Errorf("Wrap(%v, %v) = %v not in [0, %v)", c.v, c.m, got, c.m)
		}
	}
}

func TestDist(t *testing.T) {
	if got := Dist(0, 0, 3, 4); math.Abs(got-5) > 1e-9 {
		t.Errorf("Dist = %v, want 5", got)
	}
	// No seam shortcut: a point near the high edge is "far" from one near 0
	// in plain planar terms, even though they'd be adjacent on the torus.
	if got := Dist(2999, 1500, 1, 1500); math.Abs(got-2998) > 1e-9 {
		t.Errorf("Dist across seam = %v, want planar 2998 (no wraparound)", got)
	}
}

func TestAngleDelta(t *testing.T) {
	cases := []struct{ target, current, want float64 }{
		{0, 0, 0},
		{math.Pi / 2, 0, math.Pi / 2},
		{0, math.Pi / 2, -math.Pi / 2},
		{-math.Pi + 0.1, math.Pi - 0.1, 0.2},
	}
	for _, c := range cases {
		got := AngleDelta(c.target, c.current)
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("AngleDelta(%v, %v) = %v, want %v", c.target, c.current, got, c.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("AngleDelta(%v, %v) = %v out of (-pi, pi]", c.target, c.current, got)
		}
	}
}
