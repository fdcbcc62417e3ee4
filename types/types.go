// Package types contains shared data structures for termchess.
package types

import (
	"encoding/json"
	"fmt"
)

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Coord addresses a square as (row, col). Row 0 is the top of the board (black's back rank).
type Coord struct {
	Row int
	Col int
}

// OffBoard is the distinct, always-invalid coordinate.
var OffBoard = Coord{Row: -1, Col: -1}

// Valid returns true if the coordinate lies on the board.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Add returns the coordinate shifted by (dr, dc). The result may be off the board.
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// String renders the square name for display, e.g. (6, 4) -> "e2".
func (c Coord) String() string {
	if !c.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+rune(c.Col), BoardSize-c.Row)
}

// MarshalJSON encodes a Coord as a JSON array [row, col].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON allows Coord to be unmarshaled from a JSON array [row, col].
func (c *Coord) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("coord: expected [row, col], got %d values", len(v))
	}
	c.Row = v[0]
	c.Col = v[1]
	return nil
}

// InBounds returns the coordinates that lie on the board, preserving order.
func InBounds(cs ...Coord) []Coord {
	out := make([]Coord, 0, len(cs))
	for _, c := range cs {
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

// Color is a side. White moves on even turns, black on odd turns.
type Color int

const (
	White Color = iota
	Black
)

// ColorForTurn derives the side to move from the turn counter.
func ColorForTurn(turn int) Color {
	if turn%2 == 0 {
		return White
	}
	return Black
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("color(%d)", int(c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// Kind is one of the six piece types. The zero value is not a piece.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

// Kinds lists the closed set of piece kinds.
var Kinds = []Kind{Pawn, Rook, Knight, Bishop, Queen, King}

var kindNames = map[Kind]string{
	Pawn:   "Pawn",
	Rook:   "Rook",
	Knight: "Knight",
	Bishop: "Bishop",
	Queen:  "Queen",
	King:   "King",
}

// Valid returns true for the six recognized kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Glyph returns the default chess symbol for the kind.
func (k Kind) Glyph() rune {
	switch k {
	case Pawn:
		return '♟'
	case Rook:
		return '♜'
	case Knight:
		return '♞'
	case Bishop:
		return '♝'
	case Queen:
		return '♛'
	case King:
		return '♚'
	}
	return '?'
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

// Piece is a live piece on the board. HasMoved only matters for pawns and is never reset.
type Piece struct {
	ID       int   `json:"id"`
	Kind     Kind  `json:"kind"`
	Color    Color `json:"color"`
	At       Coord `json:"at"`
	HasMoved bool  `json:"has_moved"`
}

func (p Piece) String() string {
	return fmt.Sprintf("(%s [%d, %d] %s)", p.Kind, p.At.Row, p.At.Col, p.Color)
}

// SquareFlag is the transient highlight of a square. At most one is set per square.
type SquareFlag int

const (
	FlagNone SquareFlag = iota
	FlagSelected
	FlagPossible
	FlagThreatened
)

func (f SquareFlag) String() string {
	switch f {
	case FlagSelected:
		return "selected"
	case FlagPossible:
		return "possible"
	case FlagThreatened:
		return "threatened"
	}
	return ""
}

func (f SquareFlag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *SquareFlag) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*f = FlagNone
	case "selected":
		*f = FlagSelected
	case "possible":
		*f = FlagPossible
	case "threatened":
		*f = FlagThreatened
	default:
		return fmt.Errorf("unknown square flag %q", text)
	}
	return nil
}

// Move is a completed move from one square to another.
type Move struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

// BoardState is a read-only snapshot of a game handed to rendering surfaces.
// Flags is indexed as Flags[row][col].
type BoardState struct {
	MoveNumber   int                              `json:"move_number"`
	PlayerToMove Color                            `json:"player_to_move"`
	Phase        string                           `json:"phase"` // "idle", "primed"
	Pieces       []Piece                          `json:"pieces"`
	Flags        [BoardSize][BoardSize]SquareFlag `json:"flags"`
	Selected     *Piece                           `json:"selected,omitempty"`
	Legal        []Coord                          `json:"legal"`
	LastEvent    string                           `json:"last_event"`
	Notice       string                           `json:"notice,omitempty"`
	LastMove     Move                             `json:"last_move"`
	Captured     map[Color]int                    `json:"captured"` // pieces lost by each side
	Placement    string                           `json:"placement"`
}

// PieceAt returns the piece on the given square, if any.
func (b *BoardState) PieceAt(c Coord) (Piece, bool) {
	for _, p := range b.Pieces {
		if p.At == c {
			return p, true
		}
	}
	return Piece{}, false
}

// Flag returns the highlight of the given square.
func (b *BoardState) Flag(c Coord) SquareFlag {
	if !c.Valid() {
		return FlagNone
	}
	return b.Flags[c.Row][c.Col]
}

// NewBoardState creates an empty snapshot with white to move.
func NewBoardState() *BoardState {
	s := &BoardState{
		PlayerToMove: White,
		Phase:        "idle",
		Captured:     map[Color]int{White: 0, Black: 0},
	}
	s.LastMove.From = OffBoard
	s.LastMove.To = OffBoard
	return s
}
