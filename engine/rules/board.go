package rules

import (
	"fmt"

	"termchess/types"
)

// backRank is the piece order on rows 0 and 7, from column 0 to 7.
var backRank = [types.BoardSize]types.Kind{
	types.Rook, types.Knight, types.Bishop, types.Queen,
	types.King, types.Bishop, types.Knight, types.Rook,
}

// Board maps squares to the pieces occupying them.
// It is a value type: copying a Board copies the whole position.
type Board struct {
	grid [types.BoardSize][types.BoardSize]types.Piece // Kind == NoKind means empty
}

// NewBoard places the given pieces on an otherwise empty board. Any placement is allowed
// as long as every piece is on the board, of a known kind, and alone on its square.
// Pieces without an ID are numbered after the highest ID given.
func NewBoard(pieces ...types.Piece) (Board, error) {
	var b Board
	nextID := 1
	for _, p := range pieces {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}
	for _, p := range pieces {
		if !p.Kind.Valid() {
			return Board{}, fmt.Errorf("piece at %v: %w: %d", p.At, ErrUnknownKind, int(p.Kind))
		}
		if !p.At.Valid() {
			return Board{}, fmt.Errorf("%s at [%d, %d]: %w", p.Kind, p.At.Row, p.At.Col, ErrOffBoard)
		}
		if other, ok := b.At(p.At); ok {
			return Board{}, fmt.Errorf("%s on %v: %w by %s", p.Kind, p.At, ErrOccupied, other)
		}
		if p.ID == 0 {
			p.ID = nextID
			nextID++
		}
		b.grid[p.At.Row][p.At.Col] = p
	}
	return b, nil
}

// StandardBoard returns the usual starting layout: black on rows 0 and 1, white on rows 6 and 7.
func StandardBoard() Board {
	var pieces []types.Piece
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			color := types.White
			if row <= 1 {
				color = types.Black
			}
			var kind types.Kind
			switch row {
			case 0, 7:
				kind = backRank[col]
			case 1, 6:
				kind = types.Pawn
			default:
				continue
			}
			pieces = append(pieces, types.Piece{
				ID:    len(pieces) + 1,
				Kind:  kind,
				Color: color,
				At:    types.Coord{Row: row, Col: col},
			})
		}
	}
	b, err := NewBoard(pieces...)
	if err != nil {
		panic(err)
	}
	return b
}

// At returns the piece on c. An empty or off-board square is reported as not found.
func (b *Board) At(c types.Coord) (types.Piece, bool) {
	if !c.Valid() {
		return types.Piece{}, false
	}
	p := b.grid[c.Row][c.Col]
	if p.Kind == types.NoKind {
		return types.Piece{}, false
	}
	return p, true
}

// Occupied returns true if a piece stands on c.
func (b *Board) Occupied(c types.Coord) bool {
	_, ok := b.At(c)
	return ok
}

// Pieces returns all live pieces in row-major order.
func (b *Board) Pieces() []types.Piece {
	var pieces []types.Piece
	for row := range b.grid {
		for col := range b.grid[row] {
			if p := b.grid[row][col]; p.Kind != types.NoKind {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// Count returns the number of live pieces.
func (b *Board) Count() int {
	return len(b.Pieces())
}

// CountColor returns the number of live pieces of one side.
func (b *Board) CountColor(color types.Color) int {
	n := 0
	for _, p := range b.Pieces() {
		if p.Color == color {
			n++
		}
	}
	return n
}

// move relocates the piece on from to to, removing whatever stood on to.
// A moved pawn loses its two-square advance for good. It returns the captured piece, if any.
func (b *Board) move(from, to types.Coord) (captured types.Piece, ok bool) {
	p, found := b.At(from)
	if !found || !to.Valid() {
		return types.Piece{}, false
	}
	captured, ok = b.At(to)
	p.At = to
	if p.Kind == types.Pawn {
		p.HasMoved = true
	}
	b.grid[from.Row][from.Col] = types.Piece{}
	b.grid[to.Row][to.Col] = p
	return captured, ok
}
