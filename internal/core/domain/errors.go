package domain

import "errors"

var (
	ErrMissingName   = errors.New("name is required")
	ErrInvalidPeriod = errors.New("invalid week identifier")
	ErrEmptyName     = errors.New("new name is required")
	ErrSameName      = errors.New("old and new name are identical")
	ErrUnknownPolicy = errors.New("unknown week policy")
	ErrVoteConflict  = errors.New("new name already voted in the same week")
)
