package rules

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"termchess/types"
)

var kindToPieceType = map[types.Kind]chess.PieceType{
	types.Pawn:   chess.Pawn,
	types.Rook:   chess.Rook,
	types.Knight: chess.Knight,
	types.Bishop: chess.Bishop,
	types.Queen:  chess.Queen,
	types.King:   chess.King,
}

// squareOf converts a board coordinate to a chess.Square.
// Row 0 is rank 8, column 0 is file a.
func squareOf(c types.Coord) chess.Square {
	return chess.NewSquare(chess.File(c.Col), chess.Rank(types.BoardSize-1-c.Row))
}

// coordOf converts a chess.Square back to a board coordinate.
func coordOf(sq chess.Square) types.Coord {
	return types.Coord{Row: types.BoardSize - 1 - int(sq.Rank()), Col: int(sq.File())}
}

func chessColor(c types.Color) chess.Color {
	if c == types.Black {
		return chess.Black
	}
	return chess.White
}

// Placement returns the FEN piece-placement field of the board,
// e.g. "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR" for the standard layout.
func (b *Board) Placement() string {
	m := make(map[chess.Square]chess.Piece)
	for _, p := range b.Pieces() {
		m[squareOf(p.At)] = chess.NewPiece(kindToPieceType[p.Kind], chessColor(p.Color))
	}
	return chess.NewBoard(m).String()
}

// ParsePlacement builds a board from a FEN piece-placement field. A full FEN record is
// accepted too; only its first field is used. Pawns away from their starting row are
// treated as having moved.
func ParsePlacement(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return Board{}, fmt.Errorf("%w: empty", ErrBadPlacement)
	}

	var cb chess.Board
	if err := cb.UnmarshalText([]byte(fields[0])); err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrBadPlacement, err)
	}

	var grid [types.BoardSize][types.BoardSize]types.Piece
	for sq, cp := range cb.SquareMap() {
		kind, err := kindOf(cp.Type())
		if err != nil {
			return Board{}, err
		}
		at := coordOf(sq)
		color := types.White
		if cp.Color() == chess.Black {
			color = types.Black
		}
		grid[at.Row][at.Col] = types.Piece{
			Kind:     kind,
			Color:    color,
			At:       at,
			HasMoved: kind == types.Pawn && at.Row != pawnRow(color),
		}
	}

	// Number pieces in row-major order so ids do not depend on map iteration.
	var pieces []types.Piece
	for row := range grid {
		for col := range grid[row] {
			if p := grid[row][col]; p.Kind != types.NoKind {
				p.ID = len(pieces) + 1
				pieces = append(pieces, p)
			}
		}
	}
	return NewBoard(pieces...)
}

func kindOf(t chess.PieceType) (types.Kind, error) {
	for kind, pt := range kindToPieceType {
		if pt == t {
			return kind, nil
		}
	}
	return types.NoKind, fmt.Errorf("%w: piece type %v", ErrUnknownKind, t)
}

// pawnRow is the row a side's pawns start on.
func pawnRow(c types.Color) int {
	if c == types.White {
		return types.BoardSize - 2
	}
	return 1
}
