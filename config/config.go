package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"

	"termchess/engine/rules"
	"termchess/types"
)

var (
	cfgFile = "termchess/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare int `json:"light_square"`
	DarkSquare  int `json:"dark_square"`
	Selected    int `json:"selected"`
	Possible    int `json:"possible"`
	Threatened  int `json:"threatened"`
	CursorBG    int `json:"cursor_bg"`
	LastMoveBG  int `json:"last_move_bg"`
	WhitePiece  int `json:"white_piece"`
	BlackPiece  int `json:"black_piece"`
	Coordinates int `json:"coordinates"`
}

type ConfigSymbols struct {
	Pawn   rune `json:"pawn"`
	Rook   rune `json:"rook"`
	Knight rune `json:"knight"`
	Bishop rune `json:"bishop"`
	Queen  rune `json:"queen"`
	King   rune `json:"king"`
}

// Glyph returns the configured symbol for a piece kind.
func (s ConfigSymbols) Glyph(k types.Kind) rune {
	switch k {
	case types.Pawn:
		return s.Pawn
	case types.Rook:
		return s.Rook
	case types.Knight:
		return s.Knight
	case types.Bishop:
		return s.Bishop
	case types.Queen:
		return s.Queen
	case types.King:
		return s.King
	}
	return k.Glyph()
}

type Theme struct {
	CellWidth        int           `json:"cell_width"`
	FullWidthLetters bool          `json:"fullwidth_letters"`
	DrawLastMove     bool          `json:"draw_last_move"`
	Colors           ConfigColors  `json:"colors"`
	Symbols          ConfigSymbols `json:"symbols"`
}

// GameSettings holds defaults for new games.
type GameSettings struct {
	StartPosition string `json:"start_position"` // FEN placement, empty = standard
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// LogConfig holds settings for the diagnostic log.
type LogConfig struct {
	DebugFile string `json:"debug_file"` // empty = XDG cache location
	Level     string `json:"level"`
}

type Config struct {
	Theme  Theme        `json:"theme"`
	Game   GameSettings `json:"game"`
	Server ServerConfig `json:"server"`
	Log    LogConfig    `json:"log"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err = readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.Pawn, s.Rook, s.Knight, s.Bishop, s.Queen, s.King} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	colors := c.Theme.Colors
	for _, code := range []int{
		colors.LightSquare, colors.DarkSquare, colors.Selected, colors.Possible, colors.Threatened,
		colors.CursorBG, colors.LastMoveBG, colors.WhitePiece, colors.BlackPiece, colors.Coordinates,
	} {
		if code < 0 || code > 255 {
			return &InvalidConfig{fmt.Sprintf("palette color %d is outside 0-255", code)}
		}
	}
	if c.Theme.CellWidth < 1 || c.Theme.CellWidth > 5 {
		return &InvalidConfig{"cell_width must be between 1 and 5"}
	}
	if c.Game.StartPosition != "" {
		if _, err := rules.ParsePlacement(c.Game.StartPosition); err != nil {
			return &InvalidConfig{fmt.Sprintf("start_position: %s", err)}
		}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %s", filePath, err)}
	}
	return nil
}
