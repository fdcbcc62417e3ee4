// Package logging builds the diagnostic logger shared by the game surfaces.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/level"
	"github.com/apex/log/handlers/multi"
	"github.com/apex/log/handlers/text"

	"termchess/config"
)

var debugFile = "termchess/debug.log"

// New returns a logger writing every entry as JSON to the debug file, truncated on start,
// and entries at the configured level or above as text to console. A nil console keeps
// the log out of the terminal, which the board UI needs.
func New(cfg config.LogConfig, console io.Writer) (*log.Logger, io.Closer, error) {
	path, err := debugPath(cfg.DebugFile)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	handlers := []log.Handler{json.New(f)}
	if console != nil {
		lvl := log.InfoLevel
		if cfg.Level != "" {
			lvl, err = log.ParseLevel(cfg.Level)
			if err != nil {
				f.Close()
				return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
			}
		}
		handlers = append(handlers, level.New(text.New(console), lvl))
	}

	return &log.Logger{Handler: multi.New(handlers...), Level: log.DebugLevel}, f, nil
}

func debugPath(path string) (string, error) {
	if path == "" {
		return xdg.CacheFile(debugFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return path, nil
}
