package game

import (
	"math"
	"math/rand/v2"
	"time"
)

// FoodSpawner places food on random cells. It never avoids the snake, so food
// can land on an occupied cell.
type FoodSpawner struct {
	grid Grid
	rng  *rand.Rand
}

// NewFoodSpawner seeds from the clock.
func NewFoodSpawner(grid Grid) *FoodSpawner {
	seed := uint64(time.Now().UnixNano())
	return NewFoodSpawnerWithRand(grid, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewFoodSpawnerWithRand uses the given source, for reproducible spawns.
func NewFoodSpawnerWithRand(grid Grid, rng *rand.Rand) *FoodSpawner {
	return &FoodSpawner{grid: grid, rng: rng}
}

// Spawn picks a column in [0, Cols] and a row in [0, Rows]. The upper bound is
// one past the last cell; Normalize wraps it back to 0.
func (f *FoodSpawner) Spawn() Point {
	col := f.randomUpTo(f.grid.Cols)
	row := f.randomUpTo(f.grid.Rows)
	return f.grid.Normalize(f.grid.ToPixel(col, row))
}

// randomUpTo rounds a uniform float in [0, n), so 0 and n are half as likely
// as the interior indices.
func (f *FoodSpawner) randomUpTo(n int) int {
	return int(math.Round(f.rng.Float64() * float64(n)))
}
