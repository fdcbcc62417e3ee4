// Package server exposes click-driven games over HTTP and WebSocket.
package server

import (
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/google/uuid"

	"termchess/engine"
	"termchess/engine/rules"
	"termchess/types"
)

// Session is one game reachable by its ID. Clicks on a session are serialized.
type Session struct {
	ID string

	mu   sync.Mutex
	ctrl *rules.Controller
}

// Click applies a click to the session's game. Off-board coordinates are rejected.
// publish, when set, runs before the next click is let in, so watchers see states
// in the order they were produced.
func (s *Session) Click(row, col int, publish func(*types.BoardState)) (*types.BoardState, error) {
	if !(types.Coord{Row: row, Col: col}).Valid() {
		return nil, fmt.Errorf("%w: (%d, %d)", rules.ErrOffBoard, row, col)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.ctrl.Click(row, col)
	if publish != nil {
		publish(state)
	}
	return state, nil
}

// Reset restores the session's starting position. publish runs as in Click.
func (s *Session) Reset(publish func(*types.BoardState)) *types.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Reset()
	state := s.ctrl.GetBoardState()
	if publish != nil {
		publish(state)
	}
	return state
}

// State returns the current snapshot.
func (s *Session) State() *types.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.GetBoardState()
}

// Store keeps sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	position string
	log      log.Interface
}

// NewStore creates an empty store. New games start from position unless
// the request names its own; an empty position means the standard layout.
func NewStore(position string, logger log.Interface) *Store {
	if logger == nil {
		logger = log.Log
	}
	return &Store{
		sessions: map[string]*Session{},
		position: position,
		log:      logger,
	}
}

// Create starts a new session.
func (m *Store) Create(position string) (*Session, error) {
	if position == "" {
		position = m.position
	}
	id := uuid.NewString()
	ctrl, err := rules.NewControllerFromConfig(engine.GameConfig{Position: position}, m.log.WithField("game", id))
	if err != nil {
		return nil, err
	}
	s := &Session{ID: id, ctrl: ctrl}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.log.WithFields(log.Fields{"game": id, "placement": ctrl.GetBoardState().Placement}).Info("game created")
	return s, nil
}

// Get looks up a session by ID.
func (m *Store) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Len returns the number of live sessions.
func (m *Store) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
