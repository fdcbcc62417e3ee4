package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/engine"
	"termchess/engine/rules"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	status   *tview.TextView
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	position string
}

const setupHelp = "Tab/Shift+Tab: navigate fields  |  Enter: confirm  |  empty position = standard start"

// NewGameSetup creates a new game setup form. position pre-fills the start position field.
func NewGameSetup(position string, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		position: position,
	}

	form := tview.NewForm()

	form.AddInputField("Start Position (FEN)", position, 48, nil, func(text string) {
		setup.position = strings.TrimSpace(text)
	})

	form.AddButton("Start Game", func() {
		setup.Submit()
	})

	form.AddButton("Board Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)
	form.SetFieldBackgroundColor(MenuColors.CardBG)
	form.SetLabelColor(MenuColors.Label)
	form.SetBorderColor(MenuColors.Border)

	setup.status = tview.NewTextView().
		SetText(setupHelp).
		SetTextAlign(tview.AlignCenter)
	setup.status.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(CreateCenteredForm(form, 72), 0, 1, true).
		AddItem(setup.status, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Submit validates the start position and starts the game. An invalid position
// is reported in the status line and nothing starts.
func (s *GameSetupUI) Submit() {
	if s.position != "" {
		if _, err := rules.ParsePlacement(s.position); err != nil {
			s.status.SetTextColor(tcell.ColorRed)
			s.status.SetText(err.Error())
			return
		}
	}
	s.status.SetTextColor(MenuColors.Hint)
	s.status.SetText(setupHelp)
	s.onStart(engine.GameConfig{Position: s.position})
}

// Position returns the start position currently entered.
func (s *GameSetupUI) Position() string {
	return s.position
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
