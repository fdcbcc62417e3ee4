// Package engine defines the interface between rendering surfaces and the game core.
package engine

import "termchess/types"

// GameEngine defines what a rendering surface needs to drive a game by clicks.
type GameEngine interface {
	// Click handles a click on the square at (row, col).
	// Coordinates outside the board are ignored and leave the game untouched.
	Click(row, col int) *types.BoardState

	// GetBoardState returns the current board state.
	GetBoardState() *types.BoardState

	// OnChange registers a callback fired after every handled click or reset.
	OnChange(func(boardState *types.BoardState))

	// Reset restores the starting position and clears the turn counter.
	Reset()

	// Close detaches all callbacks.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Position string // FEN piece placement; empty means the standard layout
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{}
}
