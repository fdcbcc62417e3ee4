package rules

import (
	"fmt"

	"termchess/types"
)

// Phase is the state of the selection machine.
type Phase int

const (
	Idle   Phase = iota // nothing selected
	Primed              // a piece is selected and its legal moves are cached
)

func (p Phase) String() string {
	if p == Primed {
		return "primed"
	}
	return "idle"
}

// Event describes what a click did.
type Event int

const (
	EventNone       Event = iota // empty square clicked with nothing selected
	EventInvalid                 // coordinate off the board
	EventSelected                // piece of the side to move selected
	EventReselected              // selection switched to a friendly piece, or the same one again
	EventRejected                // piece of the side not to move clicked
	EventDeselected              // click outside the legal moves dropped the selection
	EventMoved                   // selected piece moved to an empty square
	EventCaptured                // selected piece took an enemy piece
)

var eventNames = [...]string{
	EventNone:       "none",
	EventInvalid:    "invalid",
	EventSelected:   "selected",
	EventReselected: "reselected",
	EventRejected:   "rejected",
	EventDeselected: "deselected",
	EventMoved:      "moved",
	EventCaptured:   "captured",
}

func (e Event) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Selection is a selected piece together with the legal moves computed when it was selected.
// It is never edited; a new selection replaces the old one.
type Selection struct {
	Piece types.Piece
	Moves Moves
}

// State is the complete game: the board, the turn counter and the current selection.
// A nil Selection means Idle.
type State struct {
	Board     Board
	Turn      int
	Selection *Selection
	Lost      [2]int // pieces captured from each side, indexed by types.Color
	LastFrom  types.Coord
	LastTo    types.Coord
}

// NewState starts a game on b with white to move and nothing selected.
func NewState(b Board) State {
	return State{Board: b, LastFrom: types.OffBoard, LastTo: types.OffBoard}
}

// TurnColor returns the side to move.
func (s State) TurnColor() types.Color {
	return types.ColorForTurn(s.Turn)
}

func (s State) Phase() Phase {
	if s.Selection == nil {
		return Idle
	}
	return Primed
}

// Legal returns the cached legal destinations of the selected piece, or nil when idle.
func (s State) Legal() []types.Coord {
	if s.Selection == nil {
		return nil
	}
	return s.Selection.Moves.All()
}

// Hints is everything a rendering surface needs to redraw after a click.
// Square highlights are derived from it; nothing else carries them between clicks.
type Hints struct {
	Event      Event
	Clicked    types.Coord
	Piece      *types.Piece // piece on the clicked square, if any
	Selected   types.Coord  // OffBoard when nothing is selected
	Possible   []types.Coord
	Threatened []types.Coord
	Notice     string
	From       types.Coord // move origin, OffBoard unless a move happened
	To         types.Coord
	Captured   *types.Piece
}

func newHints(at types.Coord) Hints {
	return Hints{
		Clicked:  at,
		Selected: types.OffBoard,
		From:     types.OffBoard,
		To:       types.OffBoard,
	}
}

// Flag returns the highlight of c, preferring selected over possible over threatened.
func (h Hints) Flag(c types.Coord) types.SquareFlag {
	if c.Valid() && c == h.Selected {
		return types.FlagSelected
	}
	for _, x := range h.Possible {
		if x == c {
			return types.FlagPossible
		}
	}
	for _, x := range h.Threatened {
		if x == c {
			return types.FlagThreatened
		}
	}
	return types.FlagNone
}

// Moved reports whether the click completed a move.
func (h Hints) Moved() bool {
	return h.Event == EventMoved || h.Event == EventCaptured
}

// HandleClick applies a click on at to s and returns the resulting state with its hints.
// s itself is left untouched.
func HandleClick(s State, at types.Coord) (State, Hints) {
	h := newHints(at)
	if !at.Valid() {
		h.Event = EventInvalid
		return s, h
	}

	next := s
	clicked, occupied := next.Board.At(at)
	if occupied {
		h.Piece = &clicked
	}

	if s.Selection == nil {
		switch {
		case !occupied:
			h.Event = EventNone
		case clicked.Color == s.TurnColor():
			next.selectPiece(clicked, &h)
			h.Event = EventSelected
		default:
			h.Event = EventRejected
			h.Notice = fmt.Sprintf("It's %s's turn!", s.TurnColor())
		}
		return next, h
	}

	selected := s.Selection.Piece
	switch {
	case occupied && clicked.Color == selected.Color:
		next.selectPiece(clicked, &h)
		h.Event = EventReselected
	case s.Selection.Moves.Contains(at):
		captured, took := next.Board.move(selected.At, at)
		next.Selection = nil
		next.Turn++
		next.LastFrom = selected.At
		next.LastTo = at
		h.From = selected.At
		h.To = at
		h.Event = EventMoved
		if took {
			next.Lost[captured.Color]++
			h.Captured = &captured
			h.Event = EventCaptured
		}
	default:
		next.Selection = nil
		h.Event = EventDeselected
	}
	return next, h
}

// selectPiece caches p's legal moves as the new selection and records the highlights.
func (s *State) selectPiece(p types.Piece, h *Hints) {
	moves := Validate(s.Board, p)
	s.Selection = &Selection{Piece: p, Moves: moves}
	h.Selected = p.At
	h.Possible = moves.Possible
	h.Threatened = moves.Threatened
}
