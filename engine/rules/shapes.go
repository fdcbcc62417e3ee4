// Package rules implements move generation, move validation and the click-driven
// selection/turn state machine for a simplified game of chess.
//
// The rules deliberately stop at piece movement: there is no check detection, castling,
// en passant, promotion or draw detection.
package rules

import (
	"fmt"

	"termchess/types"
)

// direction is a unit step (dr, dc).
type direction struct {
	dr, dc int
}

var (
	north     = direction{-1, 0}
	northEast = direction{-1, 1}
	east      = direction{0, 1}
	southEast = direction{1, 1}
	south     = direction{1, 0}
	southWest = direction{1, -1}
	west      = direction{0, -1}
	northWest = direction{-1, -1}
)

var (
	rookDirections   = []direction{north, east, south, west}
	bishopDirections = []direction{northEast, southEast, southWest, northWest}
	queenDirections  = []direction{north, northEast, east, southEast, south, southWest, west, northWest}
	kingOffsets      = queenDirections
	knightOffsets    = []direction{
		{-2, -1}, {-2, 1},
		{-1, 2}, {1, 2},
		{2, 1}, {2, -1},
		{1, -2}, {-1, -2},
	}
)

// Shape holds the candidate destinations of a piece, ignoring occupancy.
// Exactly one family of fields is populated depending on the piece kind.
type Shape struct {
	Rays      [][]types.Coord // Rook, Bishop, Queen: one ordered ray per direction
	Steps     []types.Coord   // Knight, King
	Diagonals []types.Coord   // Pawn captures
	Straight  []types.Coord   // Pawn advances, in forward order
}

// Candidates flattens the shape into a single list.
func (s Shape) Candidates() []types.Coord {
	var out []types.Coord
	for _, ray := range s.Rays {
		out = append(out, ray...)
	}
	out = append(out, s.Steps...)
	out = append(out, s.Diagonals...)
	out = append(out, s.Straight...)
	return out
}

// ShapeOf returns the candidate destinations of p. It panics on an unrecognized kind:
// the six kinds are a closed set and anything else is a construction bug.
func ShapeOf(p types.Piece) Shape {
	switch p.Kind {
	case types.Rook, types.Bishop, types.Queen:
		return Shape{Rays: RayShapes(p.Kind, p.At)}
	case types.Knight, types.King:
		return Shape{Steps: StepShapes(p.Kind, p.At)}
	case types.Pawn:
		diagonals, straight := PawnShapes(p.Color, p.At, p.HasMoved)
		return Shape{Diagonals: diagonals, Straight: straight}
	}
	panic(fmt.Sprintf("rules: %v: %s", ErrUnknownKind, p.Kind))
}

// RayShapes returns one ray per direction for a sliding piece. Each ray is ordered by
// increasing distance from at and stops at the board edge.
func RayShapes(kind types.Kind, at types.Coord) [][]types.Coord {
	var dirs []direction
	switch kind {
	case types.Rook:
		dirs = rookDirections
	case types.Bishop:
		dirs = bishopDirections
	case types.Queen:
		dirs = queenDirections
	default:
		panic(fmt.Sprintf("rules: %s is not a ray piece", kind))
	}

	rays := make([][]types.Coord, 0, len(dirs))
	for _, d := range dirs {
		var ray []types.Coord
		for n := 1; n < types.BoardSize; n++ {
			c := at.Add(d.dr*n, d.dc*n)
			if !c.Valid() {
				break
			}
			ray = append(ray, c)
		}
		rays = append(rays, ray)
	}
	return rays
}

// StepShapes returns the fixed-offset destinations of a knight or king that are on the board.
func StepShapes(kind types.Kind, at types.Coord) []types.Coord {
	var offsets []direction
	switch kind {
	case types.Knight:
		offsets = knightOffsets
	case types.King:
		offsets = kingOffsets
	default:
		panic(fmt.Sprintf("rules: %s is not a step piece", kind))
	}

	moves := make([]types.Coord, 0, len(offsets))
	for _, o := range offsets {
		moves = append(moves, at.Add(o.dr, o.dc))
	}
	return types.InBounds(moves...)
}

// Forward returns the row delta of a forward pawn step: white moves up, black moves down.
func Forward(color types.Color) int {
	if color == types.White {
		return -1
	}
	return 1
}

// PawnShapes returns the capture diagonals and the straight advances of a pawn.
// The two-square advance is only offered while the pawn has not moved.
func PawnShapes(color types.Color, at types.Coord, hasMoved bool) (diagonals, straight []types.Coord) {
	dr := Forward(color)
	diagonals = types.InBounds(at.Add(dr, 1), at.Add(dr, -1))

	advances := []types.Coord{at.Add(dr, 0)}
	if !hasMoved {
		advances = append(advances, at.Add(2*dr, 0))
	}
	straight = types.InBounds(advances...)
	return diagonals, straight
}
