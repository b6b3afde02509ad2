package manager

import (
	"snake-arcade/game/types"

	"golang.org/x/exp/rand"
)

// FoodManager places food uniformly over the grid. Placement does not look
// at the snake, so food can land on an occupied cell.
type FoodManager struct {
	grid types.Grid
	rng  *rand.Rand
}

func NewFoodManager(grid types.Grid, rng *rand.Rand) *FoodManager {
	return &FoodManager{
		grid: grid,
		rng:  rng,
	}
}

// Place returns a new food cell.
func (fm *FoodManager) Place() types.Point {
	return fm.RandomCell()
}

// RandomCell returns a uniformly distributed in-bounds cell.
func (fm *FoodManager) RandomCell() types.Point {
	return types.Point{
		X: fm.rng.Intn(fm.grid.Width),
		Y: fm.rng.Intn(fm.grid.Height),
	}
}
