package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette for the setup form.
var MenuColors = struct {
	Border     tcell.Color // form border
	CardBG     tcell.Color // input field background
	Label      tcell.Color // field labels
	Hint       tcell.Color // status line
	ButtonBG   tcell.Color
	ButtonText tcell.Color
}{
	Border:     tcell.PaletteColor(60),  // muted blue-gray
	CardBG:     tcell.PaletteColor(236), // dark gray
	Label:      tcell.PaletteColor(250), // light gray
	Hint:       tcell.PaletteColor(245), // dim gray
	ButtonBG:   tcell.PaletteColor(60),
	ButtonText: tcell.PaletteColor(255),
}
