// Package ui specifies custom controls for tview to assist in playing chess in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/config"
	"termchess/engine"
	"termchess/types"
)

// rankLabelWidth is the space left of the board for rank numbers.
const rankLabelWidth = 3

type ChessBoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	cursor     types.Coord
	originX    int
	originY    int
	app        *tview.Application
	eng        engine.GameEngine
	styles     boardStyles
	infoPanel  *GameInfoPanel
	focusMode  bool
}

type boardStyles struct {
	light, dark                      tcell.Color
	selected, possible, threatened   tcell.Color
	cursor, lastMove                 tcell.Color
	whitePiece, blackPiece, coordsFG tcell.Color
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *ChessBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *ChessBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// Cursor returns the keyboard cursor, or nil when it is hidden.
func (g *ChessBoardUI) Cursor() *types.Coord {
	if !g.cursor.Valid() {
		return nil
	}
	c := g.cursor
	return &c
}

func (g *ChessBoardUI) MoveCursor(dr, dc int) {
	if g.Cursor() == nil {
		g.cursor = g.BoardState.LastMove.To
		if !g.cursor.Valid() {
			// No move made yet, start on white's king file
			g.cursor = types.Coord{Row: types.BoardSize - 2, Col: 4}
		}
		return
	}
	next := g.cursor.Add(dr, dc)
	if !next.Valid() {
		return
	}
	g.cursor = next
}

func (g *ChessBoardUI) ResetCursor() {
	g.cursor = types.OffBoard
}

func NewChessBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *ChessBoardUI {
	board := &ChessBoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(),
		hint:       hint,
		app:        app,
		cursor:     types.OffBoard,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		cw := board.cfg.Theme.CellWidth
		board.originX, board.originY = x+rankLabelWidth, y

		for row := 0; row < types.BoardSize; row++ {
			for col := 0; col < types.BoardSize; col++ {
				at := types.Coord{Row: row, Col: col}
				bg := board.squareColor(at)
				style := tcell.StyleDefault.Background(bg).Underline(at == board.cursor)
				glyph := ' '
				if p, ok := board.BoardState.PieceAt(at); ok {
					glyph = board.cfg.Theme.Symbols.Glyph(p.Kind)
					if p.Color == types.White {
						style = style.Foreground(board.styles.whitePiece)
					} else {
						style = style.Foreground(board.styles.blackPiece)
					}
				}
				drawSquare(screen, style, glyph, board.originX+col*cw, board.originY+row, cw)
			}
		}
		drawCoordinates(screen, x, y, board)
		return x, y, rankLabelWidth + types.BoardSize*cw, types.BoardSize + 1
	})
	board.Box.SetMouseCapture(board.handleMouse)
	return board
}

// handleMouse clicks the square under a left click. The event is consumed only when
// it lands on the board.
func (g *ChessBoardUI) handleMouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	if action != tview.MouseLeftClick {
		return action, event
	}
	mx, my := event.Position()
	at := squareAt(g.originX, g.originY, g.cfg.Theme.CellWidth, mx, my)
	if !at.Valid() {
		return action, event
	}
	g.Click(at.Row, at.Col)
	return action, nil
}

// squareAt maps a screen cell to a board square. Cells outside the board map to OffBoard.
func squareAt(originX, originY, cellWidth, x, y int) types.Coord {
	if x < originX || y < originY || cellWidth < 1 {
		return types.OffBoard
	}
	at := types.Coord{Row: y - originY, Col: (x - originX) / cellWidth}
	if !at.Valid() {
		return types.OffBoard
	}
	return at
}

// squareColor picks the background of a square: highlight flag, then cursor, then
// the last move, then the plain square color.
func (g *ChessBoardUI) squareColor(at types.Coord) tcell.Color {
	switch g.BoardState.Flag(at) {
	case types.FlagSelected:
		return g.styles.selected
	case types.FlagPossible:
		return g.styles.possible
	case types.FlagThreatened:
		return g.styles.threatened
	}
	if at == g.cursor {
		return g.styles.cursor
	}
	if g.cfg.Theme.DrawLastMove && (at == g.BoardState.LastMove.From || at == g.BoardState.LastMove.To) {
		return g.styles.lastMove
	}
	if (at.Row+at.Col)%2 == 0 {
		return g.styles.light
	}
	return g.styles.dark
}

// ConnectEngine attaches the board to a game, replacing any previous one.
func (g *ChessBoardUI) ConnectEngine(e engine.GameEngine) {
	if g.eng != nil {
		g.eng.Close()
	}
	g.eng = e
	g.ResetCursor()

	e.OnChange(func(boardState *types.BoardState) {
		g.BoardState = boardState
		g.refreshHint()
		// Spawn goroutine to avoid deadlock when called from the event loop
		go func() {
			g.app.QueueUpdateDraw(func() {})
		}()
	})

	g.BoardState = e.GetBoardState()
	g.refreshHint()
}

// Click forwards a click on (row, col) to the engine.
func (g *ChessBoardUI) Click(row, col int) {
	if g.eng == nil {
		return
	}
	g.eng.Click(row, col)
}

// ClickCursor clicks the square under the keyboard cursor.
func (g *ChessBoardUI) ClickCursor() {
	c := g.Cursor()
	if c == nil {
		return
	}
	g.Click(c.Row, c.Col)
}

// Reset restarts the connected game.
func (g *ChessBoardUI) Reset() {
	if g.eng == nil {
		return
	}
	g.ResetCursor()
	g.eng.Reset()
}

// Close detaches the engine.
func (g *ChessBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *ChessBoardUI) SetConfig(c *config.Config) {
	colors := c.Theme.Colors
	g.styles = boardStyles{
		light:      tcell.PaletteColor(colors.LightSquare),
		dark:       tcell.PaletteColor(colors.DarkSquare),
		selected:   tcell.PaletteColor(colors.Selected),
		possible:   tcell.PaletteColor(colors.Possible),
		threatened: tcell.PaletteColor(colors.Threatened),
		cursor:     tcell.PaletteColor(colors.CursorBG),
		lastMove:   tcell.PaletteColor(colors.LastMoveBG),
		whitePiece: tcell.PaletteColor(colors.WhitePiece),
		blackPiece: tcell.PaletteColor(colors.BlackPiece),
		coordsFG:   tcell.PaletteColor(colors.Coordinates),
	}
	g.cfg = c
}

// Width returns the screen columns the board needs, coordinates included.
func (g *ChessBoardUI) Width() int {
	return rankLabelWidth + types.BoardSize*g.cfg.Theme.CellWidth
}

// Height returns the screen rows the board needs, coordinates included.
func (g *ChessBoardUI) Height() int {
	return types.BoardSize + 1
}

func (g *ChessBoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var turnLine string
	if g.BoardState.Notice != "" {
		turnLine = fmt.Sprintf("  [red]%s[-]", g.BoardState.Notice)
	} else {
		stone := "○"
		if g.BoardState.PlayerToMove == types.Black {
			stone = "●"
		}
		turnLine = fmt.Sprintf("  %s %s to move", stone, titleCase(g.BoardState.PlayerToMove.String()))
	}
	controlsLine := "  hjkl/↑↓←→ move   ⏎/click select   r reset   f focus   q quit"

	g.hint.SetText(turnLine + "\n" + controlsLine)
}

// drawSquare fills one square with the glyph centered.
func drawSquare(s tcell.Screen, style tcell.Style, r rune, l, t, width int) {
	for i := 0; i < width; i++ {
		s.SetContent(l+i, t, ' ', nil, style)
	}
	s.SetContent(l+width/2, t, r, nil, style)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *ChessBoardUI) {
	cw := ui.cfg.Theme.CellWidth
	fileRune := 'a'
	if ui.cfg.Theme.FullWidthLetters {
		fileRune = 'ａ'
	}

	style := tcell.StyleDefault.Foreground(ui.styles.coordsFG)
	highlight := tcell.StyleDefault.Background(ui.styles.cursor)

	for col := 0; col < types.BoardSize; col++ {
		_style := style
		if col == ui.cursor.Col {
			_style = highlight
		}
		for i := 0; i < cw; i++ {
			s.SetContent(ui.originX+col*cw+i, y+types.BoardSize, ' ', nil, _style)
		}
		s.SetContent(ui.originX+col*cw+cw/2, y+types.BoardSize, fileRune+rune(col), nil, _style)
	}

	for row := 0; row < types.BoardSize; row++ {
		_style := style
		if row == ui.cursor.Row {
			_style = highlight
		}
		s.SetContent(x+1, y+row, rune('0'+types.BoardSize-row), nil, _style)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
