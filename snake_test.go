package main

import (
	"math"
	"testing"
)

func TestNewSnakeSegmentsImmediatelyAvailable(t *testing.T) {
	s := NewSnake("a", 100, 100, 0)
	segs := s.Segments()
	if len(segs) < 3 {
		t.Fatalf("expected at least 3 segments at spawn, got %d", len(segs))
	}
	for _, p := range segs {
		if p.X != 100 || p.Y != 100 {
			t.Fatalf("expected spawn-collapsed segments, got %+v", p)
		}
	}
}

func TestApplyInputLatestWins(t *testing.T) {
	s := NewSnake("a", 0, 0, 0)
	a1, a2 := 1.0, 2.0
	s.ApplyInput(InboundInput{Angle: &a1})
	s.ApplyInput(InboundInput{Angle: &a2})
	if *s.Pending.Angle != a2 {
		t.Fatalf("expected latest angle to win, got %v", *s.Pending.Angle)
	}
}

func TestApplyInputOverlaysOnlyPresentFields(t *testing.T) {
	s := NewSnake("a", 0, 0, 0)
	boost := true
	s.ApplyInput(InboundInput{Boost: &boost})
	if s.Pending.Angle != nil {
		t.Fatalf("angle should remain unset, got %v", s.Pending.Angle)
	}
	if s.Pending.Boost == nil || !*s.Pending.Boost {
		t.Fatalf("boost should be set true")
	}
}

func TestSimulateWrapsAtBoundary(t *testing.T) {
	s := NewSnake("a", WorldWidth-1, 100, 0) // angle 0 => moving +x
	s.Simulate(WorldWidth, WorldHeight)
	if s.Head.X < 0 || s.Head.X >= WorldWidth {
		t.Fatalf("head.x escaped bounds after wrap: %v", s.Head.X)
	}
}

func TestSimulateTurnEase(t *testing.T) {
	s := NewSnake("a", 0, 0, 0)
	target := math.Pi / 2
	s.ApplyInput(InboundInput{Angle: &target})
	s.Simulate(WorldWidth, WorldHeight)
	if s.Angle <= 0 || s.Angle >= target {
		t.Fatalf("expected partial turn toward target, got %v", s.Angle)
	}
}

func TestSimulateBoostGatedByLength(t *testing.T) {
	s := NewSnake("a", 0, 0, 0)
	s.Length = SnakeMinBoostLength - 1
	boost := true
	s.ApplyInput(InboundInput{Boost: &boost})
	s.Simulate(WorldWidth, WorldHeight)
	if s.Boosting {
		t.Fatal("boost should be denied below minimum length")
	}
	if s.Speed != SnakeBaseSpeed {
		t.Fatalf("expected base speed when boost denied, got %v", s.Speed)
	}
}

func TestSimulateBoostConsumesLength(t *testing.T) {
	s := NewSnake("a", 0, 0, 0)
	s.Length = SnakeMinBoostLength + 50
	// Target above length, so relaxation adds a full step and does not
	// clamp back the boost cost.
	s.TargetLength = s.Length + SnakeSegmentSpacing
	before := s.Length
	boost := true
	s.ApplyInput(InboundInput{Boost: &boost})
	s.Simulate(WorldWidth, WorldHeight)
	if !s.Boosting {
		t.Fatal("expected boost to be granted")
	}
	if s.Speed != SnakeBaseSpeed*SnakeBoostMult {
		t.Fatalf("expected boosted speed, got %v", s.Speed)
	}
	if want := before - SnakeBoostCost + SnakeGrowthStep; math.Abs(s.Length-want) > 1e-9 {
		t.Fatalf("expected boost to cost length, before=%v after=%v want %v", before, s.Length, want)
	}
}

func TestGrowRelaxesWithoutOvershoot(t *testing.T) {
	s := NewSnake("a", 0, 0, 0)
	s.Grow(SnakeSegmentSpacing)
	for i := 0; i < 1000; i++ {
		s.Simulate(WorldWidth, WorldHeight)
		if s.Length > s.TargetLength {
			t.Fatalf("length overshot target: %v > %v", s.Length, s.TargetLength)
		}
	}
	if s.Length != s.TargetLength {
		t.Fatalf("expected length to converge to target, got %v want %v", s.Length, s.TargetLength)
	}
}
