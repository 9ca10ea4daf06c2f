package main

import (
	"math"
)

// Point is a 2D world-space coordinate.
type Point struct {
	X float64
	Y float64
}

// PendingInput is the latest-wins input mailbox described in spec §3 and
// §9: a single slot per snake, not a queue. ApplyInput overwrites each
// field that the input carries and keeps the others; Simulate reads it
// but does not clear it.
type PendingInput struct {
	Angle *float64
	Boost *bool
}

// Snake is the per-agent state of spec §3. Segments/collision geometry
// is derived on demand from Positions via Segments(), never stored
// separately — that keeps the "one source of truth per tick" property
// the reference distillation implies.
type Snake struct {
	ID     string
	Head   Point
	Angle  float64 // radians
	Speed  float64

	Positions []Point // newest first; raw per-tick head trail

	Length       float64 // continuous current length
	TargetLength float64 // desired length, relaxed toward each tick

	Boosting bool
	Pending  PendingInput

	Dead bool
}

// NewSnake creates a snake at the given spawn point with
// INITIAL_LENGTH segments of visible body from tick 0 (spec §3
// Lifecycle): Positions is pre-filled with the spawn point so
// Segments() has something to sample immediately.
func NewSnake(id string, spawnX, spawnY, angle float64) *Snake {
	length := float64(SnakeInitialLength) * SnakeSegmentSpacing
	backfill := int(math.Ceil(length/SnakeSegmentSpacing)) + SnakeTrimMargin
	positions := make([]Point, backfill)
	for i := range positions {
		positions[i] = Point{X: spawnX, Y: spawnY}
	}
	return &Snake{
		ID:           id,
		Head:         Point{X: spawnX, Y: spawnY},
		Angle:        angle,
		Speed:        SnakeBaseSpeed,
		Positions:    positions,
		Length:       length,
		TargetLength: length,
	}
}

// ApplyInput overlays angle and/or boost onto the pending input mailbox
// (spec §4.3): "overlays angle and/or boost fields onto pending_input;
// fails silently on missing/invalid fields. Latest-wins — no queue."
func (s *Snake) ApplyInput(inp InboundInput) {
	if inp.Angle != nil {
		a := *inp.Angle
		s.Pending.Angle = &a
	}
	if inp.Boost != nil {
		b := *inp.Boost
		s.Pending.Boost = &b
	}
}

// Simulate advances the snake exactly one tick, per spec §4.3.
func (s *Snake) Simulate(worldW, worldH float64) {
	// 1. Exponential turn ease toward the pending target angle.
	if s.Pending.Angle != nil {
		delta := AngleDelta(*s.Pending.Angle, s.Angle)
		s.Angle += SnakeTurnEase * delta
	}

	// 2. Boost economy.
	boosting := s.Pending.Boost != nil && *s.Pending.Boost
	if boosting && s.Length > SnakeMinBoostLength {
		s.Speed = SnakeBaseSpeed * SnakeBoostMult
		s.Length -= SnakeBoostCost
		s.Boosting = true
	} else {
		s.Speed = SnakeBaseSpeed
		s.Boosting = false
	}

	// 3. Move head, wrapped into the torus.
	s.Head.X = Wrap(s.Head.X+s.Speed*math.Cos(s.Angle), worldW)
	s.Head.Y = Wrap(s.Head.Y+s.Speed*math.Sin(s.Angle), worldH)

	// 4. Prepend new head, trim tail.
	s.Positions = append([]Point{s.Head}, s.Positions...)
	maxLen := int(math.Ceil(s.TargetLength/SnakeSegmentSpacing)) + SnakeTrimMargin
	if len(s.Positions) > maxLen {
		s.Positions = s.Positions[:maxLen]
	}

	// 5. Relax length toward target without overshoot.
	if s.Length < s.TargetLength {
		s.Length += SnakeGrowthStep
		if s.Length > s.TargetLength {
			s.Length = s.TargetLength
		}
	} else if s.Length > s.TargetLength {
		s.Length -= SnakeGrowthStep
		if s.Length < s.TargetLength {
			s.Length = s.TargetLength
		}
	}
	if s.Length < 0 {
		s.Length = 0
	}
}

// Segments emits the body used for both rendering and collision (spec
// §4.3): up to max(3, floor(length/SPACING)) positions, sampled from
// Positions at stride SPACING.
func (s *Snake) Segments() []Point {
	count := int(math.Floor(s.Length / SnakeSegmentSpacing))
	if count < 3 {
		count = 3
	}
	stride := int(SnakeSegmentSpacing)
	segs := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		idx := i * stride
		if idx >= len(s.Positions) {
			break
		}
		segs = append(segs, s.Positions[idx])
	}
	return segs
}

// Grow increases the target length by the given number of length units
// (spec §4.4 Eat: "add GROW_PER_FOOD·SPACING to s.target_length").
func (s *Snake) Grow(units float64) {
	s.TargetLength += units
}
