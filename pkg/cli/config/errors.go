package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrDuplicateMatrixID = goerr.New("duplicate matrix ID")
	ErrDuplicateFormID   = goerr.New("duplicate form ID")
	ErrMissingName       = goerr.New("name is required")
	ErrInvalidChoices    = goerr.New("factor must have exactly 10 choices")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	MatrixIDKey   = "matrix_id"
	FormIDKey     = "form_id"
	GroupIDKey    = "group_id"
	FactorIDKey   = "factor_id"
)
