package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"termchess/types"
)

// play runs clicks in order and returns the final state and every hint produced.
func play(s State, clicks ...types.Coord) (State, []Hints) {
	var hints []Hints
	for _, c := range clicks {
		var h Hints
		s, h = HandleClick(s, c)
		hints = append(hints, h)
	}
	return s, hints
}

func TestKnightOpeningScenario(t *testing.T) {
	s := NewState(StandardBoard())

	s, h := HandleClick(s, at(7, 1))
	if h.Event != EventSelected || s.Phase() != Primed {
		t.Fatalf("clicking the knight: event %s, phase %s", h.Event, s.Phase())
	}
	assertCoordSet(t, h.Possible, []types.Coord{at(5, 0), at(5, 2)}, "knight possible")
	if s.Selection.Moves.Contains(at(6, 3)) {
		t.Fatal("knight must not land on its own pawn")
	}
	if h.Flag(at(7, 1)) != types.FlagSelected || h.Flag(at(5, 2)) != types.FlagPossible {
		t.Fatalf("unexpected flags: %v on knight, %v on (5, 2)", h.Flag(at(7, 1)), h.Flag(at(5, 2)))
	}

	s, h = HandleClick(s, at(5, 2))
	if h.Event != EventMoved {
		t.Fatalf("event = %s, want moved", h.Event)
	}
	if s.Turn != 1 || s.TurnColor() != types.Black {
		t.Fatalf("turn = %d (%s), want 1 (black)", s.Turn, s.TurnColor())
	}
	if s.Selection != nil {
		t.Fatal("selection should clear after a move")
	}
	knight, ok := s.Board.At(at(5, 2))
	if !ok || knight.Kind != types.Knight || knight.Color != types.White {
		t.Fatalf("knight not on (5, 2): %+v", knight)
	}
	if s.Board.Occupied(at(7, 1)) {
		t.Fatal("(7, 1) should be empty")
	}
	if s.LastFrom != at(7, 1) || s.LastTo != at(5, 2) {
		t.Fatalf("last move = %v -> %v", s.LastFrom, s.LastTo)
	}
}

func TestPawnDoubleStepScenario(t *testing.T) {
	s := NewState(StandardBoard())
	s, hints := play(s, at(6, 4), at(4, 4))
	if hints[1].Event != EventMoved {
		t.Fatalf("double step event = %s, want moved", hints[1].Event)
	}
	pawn, _ := s.Board.At(at(4, 4))
	if !pawn.HasMoved {
		t.Fatal("pawn should be marked as moved")
	}

	// Black replies, then the pawn only gets a single step.
	s, hints = play(s, at(1, 0), at(2, 0), at(4, 4))
	if hints[1].Event != EventMoved || hints[2].Event != EventSelected {
		t.Fatalf("events = %s, %s", hints[1].Event, hints[2].Event)
	}
	assertCoordSet(t, s.Legal(), []types.Coord{at(3, 4)}, "moved pawn")
}

func TestOffTurnSelectionRejected(t *testing.T) {
	s0 := NewState(StandardBoard())
	s, h := HandleClick(s0, at(1, 0))
	if h.Event != EventRejected {
		t.Fatalf("event = %s, want rejected", h.Event)
	}
	if h.Notice != "It's white's turn!" {
		t.Fatalf("notice = %q", h.Notice)
	}
	if s.Selection != nil || s.Turn != 0 {
		t.Fatalf("rejected click changed state: %+v", s)
	}

	s, _ = play(s0, at(6, 0), at(5, 0))
	_, h = HandleClick(s, at(7, 1))
	if h.Event != EventRejected || h.Notice != "It's black's turn!" {
		t.Fatalf("white on black's turn: %s %q", h.Event, h.Notice)
	}
}

func TestTransitions(t *testing.T) {
	// White rook on a1 facing a black pawn up the file with a black knight behind it.
	setup := func(t *testing.T) State {
		return NewState(mustBoard(t,
			pc(types.Rook, types.White, 7, 0),
			pc(types.King, types.White, 7, 4),
			pc(types.Pawn, types.Black, 3, 0),
			pc(types.Knight, types.Black, 2, 0),
			pc(types.King, types.Black, 0, 4),
		))
	}

	tests := []struct {
		name      string
		clicks    []types.Coord
		wantEvent Event
		wantPhase Phase
		wantTurn  int
		wantCount int
	}{
		{"idle empty square", []types.Coord{at(4, 4)}, EventNone, Idle, 0, 5},
		{"idle own piece", []types.Coord{at(7, 0)}, EventSelected, Primed, 0, 5},
		{"idle enemy piece", []types.Coord{at(3, 0)}, EventRejected, Idle, 0, 5},
		{"same piece again", []types.Coord{at(7, 0), at(7, 0)}, EventReselected, Primed, 0, 5},
		{"other friendly piece", []types.Coord{at(7, 0), at(7, 4)}, EventReselected, Primed, 0, 5},
		{"capture in range", []types.Coord{at(7, 0), at(3, 0)}, EventCaptured, Idle, 1, 4},
		{"enemy out of range", []types.Coord{at(7, 0), at(2, 0)}, EventDeselected, Idle, 0, 5},
		{"empty in range", []types.Coord{at(7, 0), at(5, 0)}, EventMoved, Idle, 1, 5},
		{"empty out of range", []types.Coord{at(7, 0), at(6, 1)}, EventDeselected, Idle, 0, 5},
		{"off board", []types.Coord{at(7, 0), at(9, 9)}, EventInvalid, Primed, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, hints := play(setup(t), tt.clicks...)
			last := hints[len(hints)-1]
			if last.Event != tt.wantEvent {
				t.Errorf("event = %s, want %s", last.Event, tt.wantEvent)
			}
			if s.Phase() != tt.wantPhase {
				t.Errorf("phase = %s, want %s", s.Phase(), tt.wantPhase)
			}
			if s.Turn != tt.wantTurn {
				t.Errorf("turn = %d, want %d", s.Turn, tt.wantTurn)
			}
			if s.Board.Count() != tt.wantCount {
				t.Errorf("piece count = %d, want %d", s.Board.Count(), tt.wantCount)
			}
			if s.Selection == nil && len(s.Legal()) != 0 {
				t.Errorf("idle state carries legal moves %v", s.Legal())
			}
		})
	}
}

func TestCaptureRemovesExactlyOnePiece(t *testing.T) {
	s := NewState(mustBoard(t,
		pc(types.Queen, types.White, 7, 3),
		pc(types.Bishop, types.Black, 3, 7),
		pc(types.Pawn, types.Black, 1, 1),
	))
	before := s.Board.Count()
	s, hints := play(s, at(7, 3), at(3, 7))
	h := hints[1]
	if h.Event != EventCaptured || h.Captured == nil || h.Captured.Kind != types.Bishop {
		t.Fatalf("expected bishop capture, got %s %+v", h.Event, h.Captured)
	}
	if s.Board.Count() != before-1 {
		t.Fatalf("count = %d, want %d", s.Board.Count(), before-1)
	}
	p, _ := s.Board.At(at(3, 7))
	if p.Kind != types.Queen || p.Color != types.White {
		t.Fatalf("(3, 7) holds %s, want the white queen", p)
	}
	if s.Lost[types.Black] != 1 || s.Lost[types.White] != 0 {
		t.Fatalf("lost = %v", s.Lost)
	}
}

func TestHandleClickDoesNotMutateInput(t *testing.T) {
	s0 := NewState(StandardBoard())
	s1, _ := HandleClick(s0, at(6, 3))
	snapshot := s1
	board := s1.Board

	s2, h := HandleClick(s1, at(4, 3))
	if h.Event != EventMoved {
		t.Fatalf("event = %s, want moved", h.Event)
	}
	if diff := cmp.Diff(snapshot, s1, cmp.AllowUnexported(Board{})); diff != "" {
		t.Fatalf("input state changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(board, s1.Board, cmp.AllowUnexported(Board{})); diff != "" {
		t.Fatalf("input board changed (-before +after):\n%s", diff)
	}
	if s2.Board.Occupied(at(6, 3)) || !s1.Board.Occupied(at(6, 3)) {
		t.Fatal("only the returned state should reflect the move")
	}
}

func TestTurnAlternationAndInvariants(t *testing.T) {
	s := NewState(StandardBoard())
	clicks := []types.Coord{
		at(6, 4), at(4, 4), // e4
		at(6, 3),           // white again: rejected
		at(1, 3), at(3, 3), // d5
		at(4, 4), at(4, 4), // select, reselect
		at(4, 4), at(3, 3), // reselect, exd5
		at(0, 3), at(0, 3), // select, reselect
		at(3, 3),           // Qxd5
		at(7, 6), at(2, 6), // knight cannot reach: deselect
		at(7, 6), at(5, 5), // Nf3
		at(3, 3), at(6, 3), // Qxd2
	}

	wantColor := types.White
	for i, c := range clicks {
		prevTurn := s.Turn
		prevCount := s.Board.Count()
		var h Hints
		s, h = HandleClick(s, c)

		switch {
		case h.Moved():
			if s.Turn != prevTurn+1 {
				t.Fatalf("click %d: move advanced turn %d -> %d", i, prevTurn, s.Turn)
			}
			wantColor = wantColor.Opponent()
		default:
			if s.Turn != prevTurn {
				t.Fatalf("click %d (%s): turn changed %d -> %d", i, h.Event, prevTurn, s.Turn)
			}
		}
		if s.TurnColor() != wantColor {
			t.Fatalf("click %d: turn color %s, want %s", i, s.TurnColor(), wantColor)
		}
		if h.Event == EventCaptured && s.Board.Count() != prevCount-1 {
			t.Fatalf("click %d: capture left %d pieces, had %d", i, s.Board.Count(), prevCount)
		}

		seen := map[types.Coord]bool{}
		for _, p := range s.Board.Pieces() {
			if seen[p.At] {
				t.Fatalf("click %d: two pieces on %v", i, p.At)
			}
			seen[p.At] = true
		}
		if s.Selection == nil && len(s.Legal()) != 0 {
			t.Fatalf("click %d: idle with legal moves", i)
		}
	}
	if s.Turn != 6 {
		t.Fatalf("final turn = %d, want 6", s.Turn)
	}
	q, _ := s.Board.At(at(6, 3))
	if q.Kind != types.Queen || q.Color != types.Black {
		t.Fatalf("(6, 3) holds %s, want the black queen", q)
	}
}

func TestHintsFlagPriority(t *testing.T) {
	h := newHints(at(0, 0))
	h.Selected = at(1, 1)
	h.Possible = []types.Coord{at(1, 1), at(2, 2)}
	h.Threatened = []types.Coord{at(2, 2), at(3, 3)}

	tests := []struct {
		square types.Coord
		want   types.SquareFlag
	}{
		{at(1, 1), types.FlagSelected},
		{at(2, 2), types.FlagPossible},
		{at(3, 3), types.FlagThreatened},
		{at(4, 4), types.FlagNone},
		{types.OffBoard, types.FlagNone},
	}
	for _, tt := range tests {
		if got := h.Flag(tt.square); got != tt.want {
			t.Errorf("Flag(%v) = %v, want %v", tt.square, got, tt.want)
		}
	}
}
