package entity

import (
	"snake-arcade/game/types"
)

// Snake is an ordered body, head first. Cells are also counted in an
// occupancy map so collision lookups don't walk the body.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
	occupied  map[types.Point]int
}

func NewSnake(startPos types.Point, dir types.Direction) *Snake {
	s := &Snake{
		Body:      []types.Point{startPos},
		Direction: dir,
		occupied:  make(map[types.Point]int),
	}
	s.occupied[startPos] = 1
	return s
}

// NewSnakeFromBody builds a snake from an explicit head-first body.
func NewSnakeFromBody(body []types.Point, dir types.Direction) *Snake {
	s := &Snake{
		Body:      make([]types.Point, len(body)),
		Direction: dir,
		occupied:  make(map[types.Point]int, len(body)),
	}
	copy(s.Body, body)
	for _, p := range body {
		s.occupied[p]++
	}
	return s
}

// Move prepends newHead.
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
	s.occupied[newHead]++
}

func (s *Snake) RemoveTail() {
	if len(s.Body) <= 1 {
		return
	}
	tail := s.Body[len(s.Body)-1]
	s.Body = s.Body[:len(s.Body)-1]
	s.release(tail)
}

// ReplaceHead swaps the head cell for p without touching the rest of the body.
func (s *Snake) ReplaceHead(p types.Point) {
	s.release(s.Body[0])
	s.Body[0] = p
	s.occupied[p]++
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any body cell equals p.
func (s *Snake) Occupies(p types.Point) bool {
	return s.occupied[p] > 0
}

// NextHead is the head shifted one cell along the current direction.
func (s *Snake) NextHead() types.Point {
	return s.GetHead().Add(s.Direction.ToPoint())
}

// CopyBody returns a snapshot of the body.
func (s *Snake) CopyBody() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}

func (s *Snake) release(p types.Point) {
	if s.occupied[p] <= 1 {
		delete(s.occupied, p)
		return
	}
	s.occupied[p]--
}
