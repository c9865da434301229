package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
)

var (
	// ErrMatrixNotFound is returned when a matrix is not found in the library
	ErrMatrixNotFound = goerr.New("matrix not found")

	// ErrFormNotFound is returned when a scoring form is not found in the library
	ErrFormNotFound = goerr.New("scoring form not found")
)

// MatrixRecord is a named risk matrix definition
type MatrixRecord struct {
	ID          types.MatrixID
	Name        string
	Description string
	Definition  *matrix.Definition
}

// Library holds the risk matrices and scoring forms available to the
// application. It is populated at startup and read-only afterwards.
type Library struct {
	matrices    map[types.MatrixID]*MatrixRecord
	matrixOrder []types.MatrixID
	forms       map[types.FormID]*scoring.Form
	formOrder   []types.FormID
}

// NewLibrary creates an empty Library
func NewLibrary() *Library {
	return &Library{
		matrices: make(map[types.MatrixID]*MatrixRecord),
		forms:    make(map[types.FormID]*scoring.Form),
	}
}

// NewDefaultLibrary creates a Library holding the built-in balanced FAIR
// matrix and the OWASP form
func NewDefaultLibrary() *Library {
	lib := NewLibrary()
	lib.RegisterMatrix(&MatrixRecord{
		ID:          "balanced-fair",
		Name:        "3x3 balanced FAIR",
		Description: "Three level probability and impact axes with a balanced risk distribution",
		Definition:  matrix.BalancedFAIR(),
	})
	lib.RegisterForm(scoring.OWASPForm())
	return lib
}

// RegisterMatrix adds or replaces a matrix. Replacing keeps the original position.
func (l *Library) RegisterMatrix(record *MatrixRecord) {
	if _, exists := l.matrices[record.ID]; !exists {
		l.matrixOrder = append(l.matrixOrder, record.ID)
	}
	l.matrices[record.ID] = record
}

// Matrix retrieves a matrix by ID
func (l *Library) Matrix(id types.MatrixID) (*MatrixRecord, error) {
	record, ok := l.matrices[id]
	if !ok {
		return nil, goerr.Wrap(ErrMatrixNotFound, "matrix not found", goerr.V("matrix_id", id))
	}
	return record, nil
}

// Matrices returns all matrices in registration order
func (l *Library) Matrices() []*MatrixRecord {
	result := make([]*MatrixRecord, 0, len(l.matrixOrder))
	for _, id := range l.matrixOrder {
		result = append(result, l.matrices[id])
	}
	return result
}

// RegisterForm adds or replaces a scoring form
func (l *Library) RegisterForm(form *scoring.Form) {
	if _, exists := l.forms[form.ID]; !exists {
		l.formOrder = append(l.formOrder, form.ID)
	}
	l.forms[form.ID] = form
}

// Form retrieves a scoring form by ID
func (l *Library) Form(id types.FormID) (*scoring.Form, error) {
	form, ok := l.forms[id]
	if !ok {
		return nil, goerr.Wrap(ErrFormNotFound, "scoring form not found", goerr.V("form_id", id))
	}
	return form, nil
}

// Forms returns all scoring forms in registration order
func (l *Library) Forms() []*scoring.Form {
	result := make([]*scoring.Form, 0, len(l.formOrder))
	for _, id := range l.formOrder {
		result = append(result, l.forms[id])
	}
	return result
}
