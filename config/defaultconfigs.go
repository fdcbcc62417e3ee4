package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		CellWidth:        3,
		FullWidthLetters: false,
		DrawLastMove:     true,
		Colors: ConfigColors{
			LightSquare: 250, // #bdbdbd
			DarkSquare:  235, // #212121
			Selected:    220, // gold
			Possible:    44,  // cyan
			Threatened:  160, // red
			CursorBG:    4,
			LastMoveBG:  108,
			WhitePiece:  255,
			BlackPiece:  16,
			Coordinates: 245,
		},
		Symbols: ConfigSymbols{
			Pawn:   '♟',
			Rook:   '♜',
			Knight: '♞',
			Bishop: '♝',
			Queen:  '♛',
			King:   '♚',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game:  GameSettings{},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
