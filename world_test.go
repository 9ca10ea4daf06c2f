package main

import "testing"

func TestWorldEatGrowsAndRemovesFood(t *testing.T) {
	w := NewWorld(1000, 1000, 0)
	s := NewSnake("a", 500, 500, 0)
	w.AddSnake(s)
	f := NewFoodAt(500, 500)
	w.Food[f.ID] = f
	before := s.TargetLength

	w.Tick()

	if _, ok := w.Food[f.ID]; ok {
		t.Fatal("expected eaten food to be removed")
	}
	if w.Snakes["a"].TargetLength <= before {
		t.Fatalf("expected target length to grow, before=%v after=%v", before, w.Snakes["a"].TargetLength)
	}
}

func TestWorldFoodEatenAtMostOncePerTick(t *testing.T) {
	w := NewWorld(1000, 1000, 0)
	a := NewSnake("a", 500, 500, 0)
	b := NewSnake("b", 500, 500, 0)
	w.AddSnake(a)
	w.AddSnake(b)
	f := NewFoodAt(500, 500)
	w.Food[f.ID] = f

	w.Tick()

	// The stacked snakes also collide and are reaped this tick, so read
	// their growth through the local pointers, not the registry.
	growthA := a.TargetLength > float64(SnakeInitialLength)*SnakeSegmentSpacing
	growthB := b.TargetLength > float64(SnakeInitialLength)*SnakeSegmentSpacing
	if growthA == growthB {
		t.Fatalf("expected exactly one snake to eat the shared food, a=%v b=%v", growthA, growthB)
	}
	if !growthA {
		t.Fatal("stable order should let the first-registered snake (a) win the tie")
	}
}

func TestWorldRespawnMaintainsFoodTarget(t *testing.T) {
	w := NewWorld(1000, 1000, 5)
	if len(w.Food) != 5 {
		t.Fatalf("expected 5 food items at construction, got %d", len(w.Food))
	}
	for id := range w.Food {
		delete(w.Food, id)
		break
	}
	w.Tick()
	if len(w.Food) != 5 {
		t.Fatalf("expected respawn to top up to target, got %d", len(w.Food))
	}
}

func TestWorldHeadOnCollisionKillsBoth(t *testing.T) {
	w := NewWorld(1000, 1000, 0)
	a := NewSnake("a", 500, 500, 0)
	b := NewSnake("b", 500, 500, 0)
	w.AddSnake(a)
	w.AddSnake(b)

	dead := w.Tick()

	if len(dead) != 2 {
		t.Fatalf("expected both snakes to die on head-on collision, got %v", dead)
	}
}

func TestWorldReapRemovesDeadSnakesAndDropsFood(t *testing.T) {
	w := NewWorld(1000, 1000, 0)
	a := NewSnake("a", 500, 500, 0)
	b := NewSnake("b", 500, 500, 0)
	w.AddSnake(a)
	w.AddSnake(b)

	w.Tick()

	if len(w.Snakes) != 0 {
		t.Fatalf("expected dead snakes to be removed, got %d remaining", len(w.Snakes))
	}
	if len(w.Food) == 0 {
		t.Fatal("expected corpse-drop food after a death")
	}
}

func TestWorldStateIsDefensiveCopy(t *testing.T) {
	w := NewWorld(1000, 1000, 0)
	s := NewSnake("a", 10, 10, 0)
	w.AddSnake(s)

	snap := w.State()
	p := snap.Players["a"]
	p.X = 999999

	if w.Snakes["a"].Head.X == 999999 {
		t.Fatal("mutating a snapshot view must not affect World state")
	}
}

func TestWorldNoSelfCollision(t *testing.T) {
	w := NewWorld(1000, 1000, 0)
	s := NewSnake("a", 500, 500, 0)
	w.AddSnake(s)

	dead := w.Tick()
	if len(dead) != 0 {
		t.Fatalf("a lone snake must never collide with itself, got dead=%v", dead)
	}
}
