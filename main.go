// termchess is a terminal chess board driven by clicks, with an optional HTTP server.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/config"
	"termchess/engine"
	"termchess/engine/rules"
	"termchess/logging"
	"termchess/server"
	"termchess/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagPosition   = flag.String("position", "", "Start position as a FEN piece placement")
	flagServe      = flag.Bool("serve", false, "Serve games over HTTP and WebSocket instead of the terminal UI")
	flagAddr       = flag.String("addr", "", "Listen address for -serve (default from config)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.ChessBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger *log.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termchess %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagPosition != "" {
		if _, err := rules.ParsePlacement(*flagPosition); err != nil {
			fmt.Fprintf(os.Stderr, "invalid -position: %s\n", err)
			os.Exit(2)
		}
		cfg.Game.StartPosition = *flagPosition
	}

	// The board owns the terminal; only the server logs to stderr.
	var console io.Writer
	if *flagServe {
		console = os.Stderr
	}
	var logFile io.Closer
	logger, logFile, err = logging.New(cfg.Log, console)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	if *flagServe {
		if err := serve(); err != nil {
			logger.WithError(err).Error("server stopped")
			logFile.Close()
			os.Exit(1)
		}
		return
	}

	runTerminal()
}

// serve runs the HTTP/WebSocket surface until the listener fails.
func serve() error {
	addr := cfg.Server.Addr
	if *flagAddr != "" {
		addr = *flagAddr
	}
	store := server.NewStore(cfg.Game.StartPosition, logger)
	hub := server.NewHub(logger)
	router := server.NewRouter(store, hub, logger)

	logger.WithField("addr", addr).Info("serving games")
	return router.Run(addr)
}

func runTerminal() {
	quickStart := *flagQuickStart || *flagPosition != "" || *flagFocus

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ termchess ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetDynamicColors(true)
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewChessBoard(app, cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.Cursor() != nil {
				gameBoard.ResetCursor()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveCursor(-1, 0)
		case tcell.KeyDown:
			gameBoard.MoveCursor(1, 0)
		case tcell.KeyLeft:
			gameBoard.MoveCursor(0, -1)
		case tcell.KeyRight:
			gameBoard.MoveCursor(0, 1)
		case tcell.KeyEnter:
			gameBoard.ClickCursor()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveCursor(0, -1)
			case 'j':
				gameBoard.MoveCursor(1, 0)
			case 'k':
				gameBoard.MoveCursor(-1, 0)
			case 'l':
				gameBoard.MoveCursor(0, 1)
			case 'r':
				gameBoard.Reset()
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg.Game.StartPosition,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", setupUI.Form(), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(engine.GameConfig{Position: cfg.Game.StartPosition})
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		logger.WithError(err).Error("terminal UI failed")
		panic(err)
	}
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	ctrl, err := rules.NewControllerFromConfig(gameCfg, logger)
	if err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	gameBoard.ConnectEngine(ctrl)
	rootPage.SwitchToPage("gameview")
}
