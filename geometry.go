package main

import "math"

// Wrap folds v into [0, m) the way the toroidal world wraps coordinates
// at the end of every mutation (spec invariant: 0 <= head.x < W).
func Wrap(v, m float64) float64 {
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}

// Dist is straight-line Euclidean distance in the unwrapped plane. It does
// not shortest-path across the torus seam — a head near one edge cannot
// reach a body across the opposite edge via this function, matching the
// reference behavior.
func Dist(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleDelta returns the signed minimal angular difference target-current,
// normalized into (-pi, pi].
func AngleDelta(target, current float64) float64 {
	d := math.Mod(target-current, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
