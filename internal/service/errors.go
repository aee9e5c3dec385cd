package service

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDrawExists       = errors.New("draw already generated")
	ErrWinnerNotInMatch = errors.New("winner is not part of this match")
	ErrMatchNotReady    = errors.New("match is still waiting for a team")
	ErrMatchCompleted   = errors.New("match already completed")
	ErrKnockoutNotReady = errors.New("knockout phase cannot be seeded yet")
)
