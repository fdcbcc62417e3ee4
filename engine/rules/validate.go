package rules

import (
	"fmt"

	"termchess/types"
)

// Moves is the legal destination set of a selected piece, split by what lands there.
type Moves struct {
	Possible   []types.Coord // empty destinations
	Threatened []types.Coord // captures
}

// All returns every legal destination.
func (m Moves) All() []types.Coord {
	out := make([]types.Coord, 0, m.Len())
	out = append(out, m.Possible...)
	return append(out, m.Threatened...)
}

// Contains reports whether c is a legal destination.
func (m Moves) Contains(c types.Coord) bool {
	for _, x := range m.Possible {
		if x == c {
			return true
		}
	}
	for _, x := range m.Threatened {
		if x == c {
			return true
		}
	}
	return false
}

func (m Moves) Len() int {
	return len(m.Possible) + len(m.Threatened)
}

func (m Moves) Empty() bool {
	return m.Len() == 0
}

// Validate returns the squares p may legally move to on b this turn.
// An unrecognized kind panics rather than yielding an empty set.
func Validate(b Board, p types.Piece) Moves {
	switch p.Kind {
	case types.Rook, types.Bishop, types.Queen:
		return validateRays(b, p, RayShapes(p.Kind, p.At))
	case types.Knight, types.King:
		return validateSteps(b, p, StepShapes(p.Kind, p.At))
	case types.Pawn:
		diagonals, straight := PawnShapes(p.Color, p.At, p.HasMoved)
		return validatePawn(b, p, diagonals, straight)
	}
	panic(fmt.Sprintf("rules: cannot validate %s: %v", p, ErrUnknownKind))
}

// validateRays walks each ray until the first occupied square, which is included only
// when it holds an enemy piece.
func validateRays(b Board, p types.Piece, rays [][]types.Coord) Moves {
	var m Moves
	for _, ray := range rays {
		for _, c := range ray {
			other, ok := b.At(c)
			if !ok {
				m.Possible = append(m.Possible, c)
				continue
			}
			if other.Color != p.Color {
				m.Threatened = append(m.Threatened, c)
			}
			break
		}
	}
	return m
}

// validateSteps checks each destination on its own; only a friendly piece excludes it.
func validateSteps(b Board, p types.Piece, steps []types.Coord) Moves {
	var m Moves
	for _, c := range steps {
		other, ok := b.At(c)
		switch {
		case !ok:
			m.Possible = append(m.Possible, c)
		case other.Color != p.Color:
			m.Threatened = append(m.Threatened, c)
		}
	}
	return m
}

// validatePawn allows diagonal moves only onto enemies and straight moves only through
// empty squares, stopping at the first occupied one.
func validatePawn(b Board, p types.Piece, diagonals, straight []types.Coord) Moves {
	var m Moves
	for _, c := range diagonals {
		if other, ok := b.At(c); ok && other.Color != p.Color {
			m.Threatened = append(m.Threatened, c)
		}
	}
	for _, c := range straight {
		if b.Occupied(c) {
			break
		}
		m.Possible = append(m.Possible, c)
	}
	return m
}
