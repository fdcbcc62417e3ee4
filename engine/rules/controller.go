package rules

import (
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"

	"termchess/engine"
	"termchess/types"
)

var _ engine.GameEngine = (*Controller)(nil)

// Controller owns a game and turns clicks into state transitions.
// It is not safe for concurrent use; callers serialize clicks.
type Controller struct {
	start     Board
	state     State
	last      Hints
	log       log.Interface
	listeners []func(boardState *types.BoardState)
}

// NewController starts a game from the given position. A nil logger discards diagnostics.
func NewController(start Board, logger log.Interface) *Controller {
	if logger == nil {
		logger = discardLogger()
	}
	return &Controller{
		start: start,
		state: NewState(start),
		last:  newHints(types.OffBoard),
		log:   logger,
	}
}

// NewControllerFromConfig builds a controller for the configured start position.
func NewControllerFromConfig(cfg engine.GameConfig, logger log.Interface) (*Controller, error) {
	start := StandardBoard()
	if strings.TrimSpace(cfg.Position) != "" {
		var err error
		start, err = ParsePlacement(cfg.Position)
		if err != nil {
			return nil, err
		}
	}
	return NewController(start, logger), nil
}

// State returns the current game state.
func (c *Controller) State() State {
	return c.state
}

// LastHints returns the hints of the most recent click.
func (c *Controller) LastHints() Hints {
	return c.last
}

// Click handles a click on (row, col). Off-board clicks are dropped.
func (c *Controller) Click(row, col int) *types.BoardState {
	at := types.Coord{Row: row, Col: col}
	if !at.Valid() {
		c.log.WithField("square", at).Debug("click off board ignored")
		return c.GetBoardState()
	}
	c.HandleClick(at)
	return c.GetBoardState()
}

// HandleClick applies a click and returns its hints.
func (c *Controller) HandleClick(at types.Coord) Hints {
	prev := c.state
	next, h := HandleClick(prev, at)
	c.state = next
	c.last = h
	c.logClick(prev, h)
	c.notify()
	return h
}

// GetBoardState returns a snapshot of the current state for rendering.
func (c *Controller) GetBoardState() *types.BoardState {
	return Snapshot(c.state, c.last)
}

// OnChange registers a callback fired after every handled click or reset.
func (c *Controller) OnChange(fn func(boardState *types.BoardState)) {
	c.listeners = append(c.listeners, fn)
}

// Reset restores the starting position.
func (c *Controller) Reset() {
	c.state = NewState(c.start)
	c.last = newHints(types.OffBoard)
	c.log.WithField("placement", c.start.Placement()).Info("game reset")
	c.notify()
}

// Close detaches all callbacks.
func (c *Controller) Close() {
	c.listeners = nil
}

func (c *Controller) notify() {
	if len(c.listeners) == 0 {
		return
	}
	bs := c.GetBoardState()
	for _, fn := range c.listeners {
		fn(bs)
	}
}

// logClick writes the per-click diagnostic entry.
func (c *Controller) logClick(prev State, h Hints) {
	fields := log.Fields{
		"square":    h.Clicked.String(),
		"piece":     "None",
		"selected":  "None",
		"legal":     coordList(c.state.Legal()),
		"turn":      c.state.Turn,
		"event":     h.Event.String(),
		"placement": c.state.Board.Placement(),
	}
	if h.Piece != nil {
		fields["piece"] = h.Piece.String()
	}
	if c.state.Selection != nil {
		fields["selected"] = c.state.Selection.Piece.String()
	}
	if prev.Selection != nil {
		fields["previous"] = prev.Selection.Piece.String()
	}
	if h.Moved() {
		fields["from"] = h.From.String()
		fields["to"] = h.To.String()
	}
	if h.Captured != nil {
		fields["captured"] = h.Captured.String()
	}
	if h.Notice != "" {
		fields["notice"] = h.Notice
	}

	entry := c.log.WithFields(fields)
	if h.Event == EventRejected {
		entry.Warn(h.Notice)
		return
	}
	entry.Info("click")
}

// Snapshot converts a state and the hints of the click that produced it into a
// rendering snapshot.
func Snapshot(s State, h Hints) *types.BoardState {
	bs := types.NewBoardState()
	bs.MoveNumber = s.Turn
	bs.PlayerToMove = s.TurnColor()
	bs.Phase = s.Phase().String()
	bs.Pieces = s.Board.Pieces()
	bs.Legal = s.Legal()
	bs.LastEvent = h.Event.String()
	bs.Notice = h.Notice
	bs.LastMove.From = s.LastFrom
	bs.LastMove.To = s.LastTo
	bs.Captured[types.White] = s.Lost[types.White]
	bs.Captured[types.Black] = s.Lost[types.Black]
	bs.Placement = s.Board.Placement()
	if s.Selection != nil {
		sel := s.Selection.Piece
		bs.Selected = &sel
	}
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			bs.Flags[row][col] = h.Flag(types.Coord{Row: row, Col: col})
		}
	}
	return bs
}

func coordList(cs []types.Coord) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

func discardLogger() log.Interface {
	return &log.Logger{Handler: discard.New(), Level: log.ErrorLevel}
}
