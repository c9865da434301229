package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// ErrValidation marks errors caused by caller input
	ErrValidation = goerr.New("validation error")

	ErrAssessmentNotFound = goerr.New("assessment not found")
)

// Context keys for error values
const (
	MatrixIDKey     = "matrix_id"
	FormIDKey       = "form_id"
	AssessmentIDKey = "assessment_id"
)
