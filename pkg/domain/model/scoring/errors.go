package scoring

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidForm    = goerr.New("invalid scoring form")
	ErrUnknownFactor  = goerr.New("unknown factor")
	ErrInvalidAnswer  = goerr.New("answer out of range")
	ErrDisabledChoice = goerr.New("choice is not selectable")
	ErrMissingAnswer  = goerr.New("factor is not answered")
)
