package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var (
	idPattern     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	factorPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
)

// MatrixID identifies a risk matrix in the library
type MatrixID string

// Validate checks if the MatrixID is valid
func (m MatrixID) Validate() error {
	if m == "" {
		return goerr.New("matrix ID cannot be empty")
	}
	if !idPattern.MatchString(string(m)) {
		return goerr.New("matrix ID must be lowercase alphanumeric with hyphens", goerr.V("id", m))
	}
	return nil
}

func (m MatrixID) String() string {
	return string(m)
}

// FormID identifies a scoring form in the library
type FormID string

// Validate checks if the FormID is valid
func (f FormID) Validate() error {
	if f == "" {
		return goerr.New("form ID cannot be empty")
	}
	if !idPattern.MatchString(string(f)) {
		return goerr.New("form ID must be lowercase alphanumeric with hyphens", goerr.V("id", f))
	}
	return nil
}

func (f FormID) String() string {
	return string(f)
}

// GroupID identifies a factor group within a scoring form, e.g. "threat_agent"
type GroupID string

// Validate checks if the GroupID is valid
func (g GroupID) Validate() error {
	if !factorPattern.MatchString(string(g)) {
		return goerr.New("group ID must be lowercase alphanumeric with underscores", goerr.V("id", g))
	}
	return nil
}

func (g GroupID) String() string {
	return string(g)
}

// FactorID identifies a single factor, e.g. "skill_level"
type FactorID string

// Validate checks if the FactorID is valid
func (f FactorID) Validate() error {
	if !factorPattern.MatchString(string(f)) {
		return goerr.New("factor ID must be lowercase alphanumeric with underscores", goerr.V("id", f))
	}
	return nil
}

func (f FactorID) String() string {
	return string(f)
}

// AssessmentID is a UUID assigned to a persisted assessment
type AssessmentID string

// NewAssessmentID generates a new random AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New().String())
}

// Validate checks if the AssessmentID is a valid UUID
func (a AssessmentID) Validate() error {
	if _, err := uuid.Parse(string(a)); err != nil {
		return goerr.Wrap(err, "invalid assessment ID", goerr.V("id", a))
	}
	return nil
}

func (a AssessmentID) String() string {
	return string(a)
}
