package game

import "errors"

// Sequencing errors. An operation that returns one of these left the engine
// state untouched.
var (
	ErrInvalidTarget   = errors.New("target wins must be at least 1")
	ErrNotPlaying      = errors.New("no match in progress")
	ErrAlreadyRevealed = errors.New("round already revealed")
	ErrNotRevealed     = errors.New("round not revealed yet")
	ErrMatchDecided    = errors.New("match already decided")
)
