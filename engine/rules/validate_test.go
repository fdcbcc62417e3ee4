package rules

import (
	"testing"

	"termchess/types"
)

func TestValidateRayBlocking(t *testing.T) {
	b := mustBoard(t,
		pc(types.Rook, types.White, 4, 4),
		pc(types.Pawn, types.White, 4, 6), // friendly blocker east
		pc(types.Pawn, types.Black, 2, 4), // enemy blocker north
		pc(types.Pawn, types.Black, 1, 4), // hidden behind the enemy
	)
	rook, _ := b.At(at(4, 4))
	m := Validate(b, rook)

	assertCoordSet(t, m.Threatened, []types.Coord{at(2, 4)}, "threatened")
	// North stops short of the enemy, east short of the friend.
	assertCoordSet(t, m.Possible, []types.Coord{
		at(3, 4),
		at(4, 5),
		at(5, 4), at(6, 4), at(7, 4),
		at(4, 3), at(4, 2), at(4, 1), at(4, 0),
	}, "possible")
	for _, c := range []types.Coord{at(4, 6), at(4, 7), at(1, 4), at(0, 4)} {
		if m.Contains(c) {
			t.Errorf("rook must not reach %v", c)
		}
	}
}

func TestValidateBishopAndQueen(t *testing.T) {
	b := mustBoard(t,
		pc(types.Bishop, types.Black, 0, 2),
		pc(types.Queen, types.Black, 3, 3),
		pc(types.Knight, types.White, 5, 5),
		pc(types.Pawn, types.Black, 1, 1),
	)
	bishop, _ := b.At(at(0, 2))
	m := Validate(b, bishop)
	// South-west is blocked right away by a friendly pawn.
	assertCoordSet(t, m.All(), []types.Coord{at(1, 3), at(2, 4), at(3, 5), at(4, 6), at(5, 7)}, "bishop")

	queen, _ := b.At(at(3, 3))
	m = Validate(b, queen)
	if !m.Contains(at(5, 5)) {
		t.Errorf("queen should threaten the knight on (5, 5)")
	}
	if m.Contains(at(6, 6)) {
		t.Errorf("queen must not pass the knight")
	}
	assertCoordSet(t, m.Threatened, []types.Coord{at(5, 5)}, "queen threatened")
	if m.Len() != 23 {
		t.Errorf("queen has %d moves, want 23: %v", m.Len(), m.All())
	}
}

func TestValidateSteps(t *testing.T) {
	b := mustBoard(t,
		pc(types.Knight, types.White, 7, 1),
		pc(types.Pawn, types.White, 6, 3),
		pc(types.Pawn, types.Black, 5, 2),
		pc(types.King, types.Black, 0, 0),
		pc(types.Rook, types.Black, 0, 1),
		pc(types.Bishop, types.White, 1, 1),
	)

	knight, _ := b.At(at(7, 1))
	m := Validate(b, knight)
	assertCoordSet(t, m.Possible, []types.Coord{at(5, 0)}, "knight possible")
	assertCoordSet(t, m.Threatened, []types.Coord{at(5, 2)}, "knight threatened")

	king, _ := b.At(at(0, 0))
	m = Validate(b, king)
	assertCoordSet(t, m.Possible, []types.Coord{at(1, 0)}, "king possible")
	assertCoordSet(t, m.Threatened, []types.Coord{at(1, 1)}, "king threatened")
}

func TestValidatePawn(t *testing.T) {
	tests := []struct {
		name           string
		pieces         []types.Piece
		pawn           types.Coord
		wantPossible   []types.Coord
		wantThreatened []types.Coord
	}{
		{
			name:         "open file two squares",
			pieces:       []types.Piece{pc(types.Pawn, types.White, 6, 4)},
			pawn:         at(6, 4),
			wantPossible: []types.Coord{at(5, 4), at(4, 4)},
		},
		{
			name: "first square blocked invalidates both",
			pieces: []types.Piece{
				pc(types.Pawn, types.White, 6, 4),
				pc(types.Knight, types.Black, 5, 4),
			},
			pawn: at(6, 4),
		},
		{
			name: "second square blocked",
			pieces: []types.Piece{
				pc(types.Pawn, types.White, 6, 4),
				pc(types.Knight, types.White, 4, 4),
			},
			pawn:         at(6, 4),
			wantPossible: []types.Coord{at(5, 4)},
		},
		{
			name: "diagonals need an enemy",
			pieces: []types.Piece{
				pc(types.Pawn, types.Black, 1, 3),
				pc(types.Pawn, types.White, 2, 4),
				pc(types.Pawn, types.Black, 2, 2),
			},
			pawn:           at(1, 3),
			wantPossible:   []types.Coord{at(2, 3), at(3, 3)},
			wantThreatened: []types.Coord{at(2, 4)},
		},
		{
			name: "moved pawn advances one",
			pieces: []types.Piece{
				{Kind: types.Pawn, Color: types.Black, At: at(3, 3), HasMoved: true},
			},
			pawn:         at(3, 3),
			wantPossible: []types.Coord{at(4, 3)},
		},
		{
			name: "pawn never captures straight ahead",
			pieces: []types.Piece{
				pc(types.Pawn, types.White, 6, 0),
				pc(types.Rook, types.Black, 5, 0),
			},
			pawn: at(6, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.pieces...)
			pawn, ok := b.At(tt.pawn)
			if !ok {
				t.Fatalf("no pawn at %v", tt.pawn)
			}
			m := Validate(b, pawn)
			assertCoordSet(t, m.Possible, tt.wantPossible, "possible")
			assertCoordSet(t, m.Threatened, tt.wantThreatened, "threatened")
		})
	}
}

func TestValidateUnknownKindPanics(t *testing.T) {
	mustPanic(t, "Validate", func() {
		Validate(StandardBoard(), types.Piece{Kind: types.Kind(99), At: at(4, 4)})
	})
}

// Every legal destination must be empty or hold an enemy, and rays never jump a piece.
func TestValidateNeverLandsOnFriend(t *testing.T) {
	b := StandardBoard()
	b.move(at(6, 4), at(4, 4))
	b.move(at(1, 3), at(3, 3))
	b.move(at(7, 3), at(4, 7))
	b.move(at(0, 2), at(4, 6))

	for _, p := range b.Pieces() {
		m := Validate(b, p)
		for _, c := range m.Possible {
			if b.Occupied(c) {
				t.Errorf("%s: possible move %v is occupied", p, c)
			}
		}
		for _, c := range m.Threatened {
			other, ok := b.At(c)
			if !ok || other.Color == p.Color {
				t.Errorf("%s: threatened square %v does not hold an enemy", p, c)
			}
		}
		for _, ray := range ShapeOf(p).Rays {
			blocked := false
			for _, c := range ray {
				if blocked && m.Contains(c) {
					t.Errorf("%s: reaches %v beyond a blocker", p, c)
				}
				if b.Occupied(c) {
					blocked = true
				}
			}
		}
	}
}
