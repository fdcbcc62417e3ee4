package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"termchess/types"
)

func at(row, col int) types.Coord {
	return types.Coord{Row: row, Col: col}
}

func pc(kind types.Kind, color types.Color, row, col int) types.Piece {
	return types.Piece{Kind: kind, Color: color, At: at(row, col)}
}

func mustBoard(t *testing.T, pieces ...types.Piece) Board {
	t.Helper()
	b, err := NewBoard(pieces...)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

// sortCoords makes coordinate slices compare as sets.
var sortCoords = cmpopts.SortSlices(func(a, b types.Coord) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
})

func assertCoordSet(t *testing.T, got, want []types.Coord, msg string) {
	t.Helper()
	if diff := cmp.Diff(want, got, sortCoords, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("%s: mismatch (-want +got):\n%s", msg, diff)
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
