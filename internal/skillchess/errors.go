package skillchess

import "errors"

var (
	ErrInvalidFEN      = errors.New("invalid FEN")
	ErrInvalidSquare   = errors.New("invalid square")
	ErrMalformedMove   = errors.New("malformed move")
	ErrUnknownSkill    = errors.New("unknown skill")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrNoBonusPending  = errors.New("no bonus move pending")
	ErrBonusPending    = errors.New("bonus move pending")
	ErrGameOver        = errors.New("game over")
	ErrSetupApplied    = errors.New("setup already applied")
	ErrMatchNotStarted = errors.New("match not started")
)
