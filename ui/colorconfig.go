package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/config"
	"termchess/types"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// Current selection
	selectedLight int
	selectedDark  int
	editingDark   bool // true = editing dark squares, false = editing light squares
}

type paletteEntry struct {
	code int
	name string
}

// Light square colors
var lightColors = []paletteEntry{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{223, "Peach"},
	{187, "Wheat"},
	{188, "Light Beige"},
	{180, "Tan"},
	{255, "White"},
	{252, "Light Gray"},
	{250, "Gray"},
	{248, "Medium Gray"},
	{194, "Mint"},
	{153, "Sky"},
}

// Dark square colors
var darkColors = []paletteEntry{
	{235, "Charcoal"},
	{238, "Slate"},
	{240, "Gray"},
	{244, "Dark Gray"},
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Brown"},
	{137, "Walnut"},
	{22, "Dark Green"},
	{65, "Olive"},
	{24, "Dark Cyan"},
	{60, "Blue Gray"},
	{54, "Purple"},
	{88, "Dark Red"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:           cfg,
		onDone:        onDone,
		selectedLight: cfg.Theme.Colors.LightSquare,
		selectedDark:  cfg.Theme.Colors.DarkSquare,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)

	cc.populateColorList()

	// Preview follows the highlighted entry
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		entries := cc.entries()
		if index < 0 || index >= len(entries) {
			return
		}
		if cc.editingDark {
			cc.selectedDark = entries[index].code
		} else {
			cc.selectedLight = entries[index].code
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.entries()) {
			return
		}
		cc.apply()
		if cc.editingDark {
			// Switch back to light square selection
			cc.editingDark = false
			cc.populateColorList()
			return
		}
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 32, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) entries() []paletteEntry {
	if cc.editingDark {
		return darkColors
	}
	return lightColors
}

// apply writes the chosen colors to the config and saves it. A failed save keeps
// the colors for this session.
func (cc *ColorConfigUI) apply() {
	cc.cfg.Theme.Colors.LightSquare = cc.selectedLight
	cc.cfg.Theme.Colors.DarkSquare = cc.selectedDark
	_ = cc.cfg.Save()
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedLight
	if cc.editingDark {
		cc.colorList.SetTitle(" Dark Squares (Tab: switch to light) ")
		current = cc.selectedDark
	} else {
		cc.colorList.SetTitle(" Light Squares (Tab: switch to dark) ")
	}
	for i, c := range cc.entries() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.entries() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

// previewPieces is a small fixed position drawn in the preview.
var previewPieces = map[types.Coord]types.Piece{
	{Row: 0, Col: 1}: {Kind: types.King, Color: types.Black},
	{Row: 1, Col: 2}: {Kind: types.Pawn, Color: types.Black},
	{Row: 2, Col: 3}: {Kind: types.Knight, Color: types.White},
	{Row: 3, Col: 0}: {Kind: types.Rook, Color: types.White},
	{Row: 3, Col: 4}: {Kind: types.King, Color: types.White},
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	const size = 5
	cw := cc.cfg.Theme.CellWidth
	startX := x + 2
	startY := y + 1

	if width < size*cw+4 || height < size+4 {
		return x, y, width, height
	}

	light := tcell.PaletteColor(cc.selectedLight)
	dark := tcell.PaletteColor(cc.selectedDark)
	whiteFG := tcell.PaletteColor(cc.cfg.Theme.Colors.WhitePiece)
	blackFG := tcell.PaletteColor(cc.cfg.Theme.Colors.BlackPiece)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			style := tcell.StyleDefault.Background(light)
			if (row+col)%2 == 1 {
				style = tcell.StyleDefault.Background(dark)
			}
			glyph := ' '
			if p, ok := previewPieces[types.Coord{Row: row, Col: col}]; ok {
				glyph = cc.cfg.Theme.Symbols.Glyph(p.Kind)
				if p.Color == types.White {
					style = style.Foreground(whiteFG)
				} else {
					style = style.Foreground(blackFG)
				}
			}
			drawSquare(screen, style, glyph, startX+col*cw, startY+row, cw)
		}
	}

	info := fmt.Sprintf("Light: %d  Dark: %d", cc.selectedLight, cc.selectedDark)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between light and dark square editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingDark = !cc.editingDark
	cc.populateColorList()
}
