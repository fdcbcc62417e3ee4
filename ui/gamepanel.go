package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"termchess/types"
)

// GameInfoPanel displays game information alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.box.SetText(infoText(state))
}

func infoText(bs *types.BoardState) string {
	if bs == nil {
		return ""
	}

	var text strings.Builder

	text.WriteString("[white::b]Game Info[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]Turn:[-:-:-] %d\n", bs.MoveNumber)
	fmt.Fprintf(&text, "[white]To move:[-:-:-] %s\n", bs.PlayerToMove)
	if bs.LastMove.From.Valid() {
		fmt.Fprintf(&text, "[white]Last:[-:-:-] %s-%s\n", bs.LastMove.From, bs.LastMove.To)
	}

	text.WriteString("\n[white::b]Captured[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]White lost:[-:-:-] %d\n", bs.Captured[types.White])
	fmt.Fprintf(&text, "[white]Black lost:[-:-:-] %d\n", bs.Captured[types.Black])

	text.WriteString("\n[white::b]Selection[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	if bs.Selected == nil {
		text.WriteString("[dimgray]  (none)[-]\n")
	} else {
		fmt.Fprintf(&text, "[yellow]>[-] %s %s on %s\n", bs.Selected.Color, bs.Selected.Kind, bs.Selected.At)
		if len(bs.Legal) == 0 {
			text.WriteString("[dimgray]  no moves[-]\n")
		} else {
			names := make([]string, len(bs.Legal))
			for i, c := range bs.Legal {
				names[i] = c.String()
			}
			fmt.Fprintf(&text, "  %s\n", strings.Join(names, " "))
		}
	}

	if bs.LastEvent != "" {
		fmt.Fprintf(&text, "\n[dimgray]%s[-]\n", bs.LastEvent)
	}

	return text.String()
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *ChessBoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *ChessBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()

	// Store panel reference in board for updates
	board.infoPanel = infoPanel
	infoPanel.SetBoardState(board.BoardState)

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)         // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 28, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, compact status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *ChessBoardUI) {
	gameFrame.Clear()
	board.infoPanel = nil

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)                  // left spacer
	centerRow.AddItem(board.Box, board.Width(), 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)                  // right spacer

	gameFrame.AddItem(centerRow, board.Height(), 0, true) // center row (fixed height)
	gameFrame.AddItem(nil, 0, 1, false)                   // bottom spacer
}
