package matrix

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrLevelOutOfRange is returned when a grid value does not index into the level sequence
	ErrLevelOutOfRange = goerr.New("grid value out of range of levels")

	// ErrInvalidDefinition is returned when a definition breaks its structural invariants
	ErrInvalidDefinition = goerr.New("invalid risk matrix definition")
)
