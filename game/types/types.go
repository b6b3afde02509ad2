package types

import "strings"

// Point is a cell on the grid, addressed by column (X) and row (Y).
type Point struct {
	X, Y int
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Center returns the middle cell of the grid.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

type Color struct {
	R, G, B uint8
}

var (
	Lime = Color{R: 0, G: 255, B: 0}
	Red  = Color{R: 255, G: 0, B: 0}
)

// Direction is a cardinal heading.
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// Valid reports whether d is one of the four cardinal headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// ToPoint converts a Direction into a unit displacement.
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return None
	}
}

// ParseDirection maps a key name to a Direction. Unknown names return (None, false).
func ParseDirection(key string) (Direction, bool) {
	switch strings.ToLower(key) {
	case "arrowup", "up", "w":
		return Up, true
	case "arrowright", "right", "d":
		return Right, true
	case "arrowdown", "down", "s":
		return Down, true
	case "arrowleft", "left", "a":
		return Left, true
	}
	return None, false
}
