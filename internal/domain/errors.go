package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrGenerationFailed = errors.New("generation failed")
	ErrTimeExpired      = errors.New("stage time limit expired")
)
