package domain

import "errors"

var (
	ErrMalformedChart    = errors.New("engine returned malformed chart output")
	ErrEngineUnavailable = errors.New("chart engine unavailable")
	ErrInvalidBirthData  = errors.New("invalid birth data")
)
