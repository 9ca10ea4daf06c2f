package main

import (
	"math/rand"

	"github.com/google/uuid"
)

// Food is a single pellet (spec §3): position plus a size in [3,6]
// chosen uniformly at random when the item is created. The teacher's
// multi-level (1/3/5/10), color, and moving-food machinery is dropped
// here — spec's Food is exactly (x, y, size), see DESIGN.md.
type Food struct {
	ID   string
	X    float64
	Y    float64
	Size int
}

// NewFood creates a food item at a uniformly random position inside
// the world (respawn — spec §4.4 step 3).
func NewFood(worldW, worldH float64) *Food {
	return &Food{
		ID:   uuid.NewString(),
		X:    rand.Float64() * worldW,
		Y:    rand.Float64() * worldH,
		Size: randomFoodSize(),
	}
}

// NewFoodAt creates a food item at an exact position (corpse drop —
// spec §3 Lifecycle: "a food item is created ... by corpse drop, at a
// body point").
func NewFoodAt(x, y float64) *Food {
	return &Food{
		ID:   uuid.NewString(),
		X:    x,
		Y:    y,
		Size: randomFoodSize(),
	}
}

func randomFoodSize() int {
	return 3 + rand.Intn(4) // uniform in [3, 6]
}

// ToView converts Food to its wire representation (spec §6).
func (f *Food) ToView() FoodView {
	return FoodView{X: f.X, Y: f.Y, Size: f.Size}
}
