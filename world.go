package main

import (
	"math/rand"
	"sync"
)

// World owns the snake registry and the food set, and drives the
// per-tick simulation (spec §4.4). Every method takes the mutex,
// mirroring the teacher's World/ConnManager pattern, even though spec
// §5 says a single worker owns World exclusively. The debug bridge
// (SPEC_FULL §4.7) does not call into World; it only sees the
// snapshots Server.broadcast passes it over a channel.
type World struct {
	mu     sync.RWMutex
	Width  float64
	Height float64

	Snakes map[string]*Snake
	order  []string // insertion order; breaks eat/collision ties deterministically

	Food       map[string]*Food
	FoodTarget int
}

// NewWorld creates an empty world topped up to FoodTarget.
func NewWorld(width, height float64, foodTarget int) *World {
	w := &World{
		Width:      width,
		Height:     height,
		Snakes:     make(map[string]*Snake),
		Food:       make(map[string]*Food),
		FoodTarget: foodTarget,
	}
	for len(w.Food) < foodTarget {
		f := NewFood(width, height)
		w.Food[f.ID] = f
	}
	return w
}

// AddSnake registers a new snake; it takes mu itself and does nothing
// if the identity already has a snake.
func (w *World) AddSnake(s *Snake) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.Snakes[s.ID]; exists {
		return
	}
	w.Snakes[s.ID] = s
	w.order = append(w.order, s.ID)
}

// HasSnake reports whether id has a live registry entry.
func (w *World) HasSnake(id string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.Snakes[id]
	return ok
}

// RemoveSnake deletes a snake outright — used for timeout eviction,
// which destroys the snake without a death notification (spec §4.5,
// §5 Cancellation).
func (w *World) RemoveSnake(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removeSnakeLocked(id)
}

func (w *World) removeSnakeLocked(id string) {
	if _, ok := w.Snakes[id]; !ok {
		return
	}
	delete(w.Snakes, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// ApplyInput overlays an inbound input packet onto the named snake's
// pending-input mailbox (spec §4.3), a no-op if the identity has no
// live snake (e.g. a spectator sending INPUT by mistake).
func (w *World) ApplyInput(id string, inp InboundInput) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.Snakes[id]; ok {
		s.ApplyInput(inp)
	}
}

// RandomSpawn returns a uniformly random point in the world, used to
// place a newly admitted snake (spec §3 Lifecycle).
func (w *World) RandomSpawn() (x, y, angle float64) {
	w.mu.RLock()
	width, height := w.Width, w.Height
	w.mu.RUnlock()
	return rand.Float64() * width, rand.Float64() * height, rand.Float64() * 2 * 3.141592653589793
}

// Tick executes one simulation step (spec §4.4) and returns the
// identities that died this tick, in the order they were reaped.
func (w *World) Tick() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	// 1. Move.
	for _, id := range w.order {
		s := w.Snakes[id]
		if s.Dead {
			continue
		}
		s.Simulate(w.Width, w.Height)
	}

	// 2. Eat. A single food can be eaten by at most one snake per
	// tick; the stable identity enumeration order breaks ties.
	eaten := make(map[string]bool)
	for _, id := range w.order {
		s := w.Snakes[id]
		if s.Dead {
			continue
		}
		reach := s.Speed + EatReachBonus
		for foodID, f := range w.Food {
			if eaten[foodID] {
				continue
			}
			if Dist(s.Head.X, s.Head.Y, f.X, f.Y) <= reach {
				eaten[foodID] = true
				s.Grow(FoodGrowPerFood * SnakeSegmentSpacing)
			}
		}
	}
	for foodID := range eaten {
		delete(w.Food, foodID)
	}

	// 3. Respawn.
	for len(w.Food) < w.FoodTarget {
		f := NewFood(w.Width, w.Height)
		w.Food[f.ID] = f
	}

	// 4. Collide. Self-collision is never tested (b != a by
	// construction below); head-on ties kill both independently, since
	// every head is checked against the bodies taken before this phase.
	bodies := make(map[string][]Point, len(w.order))
	for _, id := range w.order {
		s := w.Snakes[id]
		if !s.Dead {
			bodies[id] = s.Segments()
		}
	}
	for _, aID := range w.order {
		a := w.Snakes[aID]
		if a.Dead {
			continue
		}
		for _, bID := range w.order {
			if bID == aID {
				continue
			}
			killed := false
			for _, seg := range bodies[bID] {
				if Dist(a.Head.X, a.Head.Y, seg.X, seg.Y) <= CollisionRadius {
					killed = true
					break
				}
			}
			if killed {
				a.Dead = true
				break
			}
		}
	}

	// 5. Reap.
	var dead []string
	for _, id := range append([]string(nil), w.order...) {
		s := w.Snakes[id]
		if !s.Dead {
			continue
		}
		dead = append(dead, id)
		w.dropCorpseFood(s)
		w.removeSnakeLocked(id)
	}

	return dead
}

// dropCorpseFood spawns one food item at every 4th segment position of
// a corpse (spec §3 Lifecycle). Caller must hold mu.
func (w *World) dropCorpseFood(s *Snake) {
	segs := s.Segments()
	for i := 0; i < len(segs); i += 4 {
		f := NewFoodAt(segs[i].X, segs[i].Y)
		w.Food[f.ID] = f
	}
}

// State returns a defensive-copy snapshot of the world (spec §4.4):
// once returned, further mutation of the World does not affect it.
func (w *World) State() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	players := make(map[string]PlayerView, len(w.Snakes))
	for id, s := range w.Snakes {
		segs := s.Segments()
		pairs := make([][2]float64, len(segs))
		for i, p := range segs {
			pairs[i] = [2]float64{p.X, p.Y}
		}
		players[id] = PlayerView{
			UUID:     id,
			X:        s.Head.X,
			Y:        s.Head.Y,
			Angle:    s.Angle,
			Boost:    s.Boosting,
			Length:   s.Length,
			Segments: pairs,
		}
	}

	food := make([]FoodView, 0, len(w.Food))
	for _, f := range w.Food {
		food = append(food, f.ToView())
	}

	return Snapshot{Players: players, Food: food}
}
