package rules

import "errors"

var (
	ErrOffBoard     = errors.New("coordinate off board")
	ErrOccupied     = errors.New("square already occupied")
	ErrUnknownKind  = errors.New("unrecognized piece kind")
	ErrBadPlacement = errors.New("invalid FEN placement")
)
