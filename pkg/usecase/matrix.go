package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
)

type MatrixUseCase struct {
	library *model.Library
}

func NewMatrixUseCase(library *model.Library) *MatrixUseCase {
	return &MatrixUseCase{library: library}
}

// BuiltMatrix is a matrix record together with its rendered cells
type BuiltMatrix struct {
	Record *model.MatrixRecord
	Cells  [][]matrix.Cell
}

func (uc *MatrixUseCase) ListMatrices() []*model.MatrixRecord {
	return uc.library.Matrices()
}

func (uc *MatrixUseCase) GetMatrix(id types.MatrixID) (*model.MatrixRecord, error) {
	record, err := uc.library.Matrix(id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get matrix", goerr.V(MatrixIDKey, id))
	}
	return record, nil
}

// BuildMatrix validates a definition and renders it, applying the
// orientations in order
func (uc *MatrixUseCase) BuildMatrix(def *matrix.Definition, orient ...matrix.Orientation) ([][]matrix.Cell, error) {
	if def == nil {
		return nil, goerr.Wrap(ErrValidation, "matrix definition is required")
	}
	if err := def.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidation, "invalid matrix definition", goerr.V("cause", err.Error()))
	}

	if err := validateOrientations(orient); err != nil {
		return nil, err
	}

	cells, err := def.Build()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build matrix")
	}

	return uc.Orient(cells, orient...)
}

// Orient applies the orientations to a built matrix from left to right
func (uc *MatrixUseCase) Orient(cells [][]matrix.Cell, orient ...matrix.Orientation) ([][]matrix.Cell, error) {
	if err := validateOrientations(orient); err != nil {
		return nil, err
	}

	oriented, err := matrix.Orient(cells, orient...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to orient matrix")
	}
	return oriented, nil
}

func validateOrientations(orient []matrix.Orientation) error {
	for _, op := range orient {
		if !op.IsValid() {
			return goerr.Wrap(ErrValidation, "unknown orientation", goerr.V("orientation", op))
		}
	}
	return nil
}

// BuildMatrixByID renders a matrix from the library
func (uc *MatrixUseCase) BuildMatrixByID(id types.MatrixID, orient ...matrix.Orientation) (*BuiltMatrix, error) {
	record, err := uc.GetMatrix(id)
	if err != nil {
		return nil, err
	}

	cells, err := uc.BuildMatrix(record.Definition, orient...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build library matrix", goerr.V(MatrixIDKey, id))
	}

	return &BuiltMatrix{Record: record, Cells: cells}, nil
}

// ResolveRisk returns the risk level of a scenario on a library matrix
func (uc *MatrixUseCase) ResolveRisk(id types.MatrixID, probability, impact int) (*matrix.Level, error) {
	record, err := uc.GetMatrix(id)
	if err != nil {
		return nil, err
	}

	level, err := record.Definition.RiskAt(probability, impact)
	if err != nil {
		return nil, goerr.Wrap(ErrValidation, "scenario is outside the matrix",
			goerr.V(MatrixIDKey, id),
			goerr.V("probability", probability),
			goerr.V("impact", impact),
		)
	}
	return &level, nil
}
