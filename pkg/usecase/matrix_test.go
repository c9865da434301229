package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/repository/memory"
	"github.com/secmon-lab/grcengine/pkg/usecase"
)

func TestMatrixUseCase_BuildMatrixByID(t *testing.T) {
	uc := usecase.New(memory.New(), nil)

	built, err := uc.Matrix.BuildMatrixByID("balanced-fair")
	gt.NoError(t, err).Required()
	gt.Value(t, built.Record.Name).Equal("3x3 balanced FAIR")
	gt.Array(t, built.Cells).Length(3)
	gt.Value(t, built.Cells[0][2].Level.Name).Equal("High")
}

func TestMatrixUseCase_BuildMatrixByID_NotFound(t *testing.T) {
	uc := usecase.New(memory.New(), nil)

	_, err := uc.Matrix.BuildMatrixByID("missing")
	gt.Error(t, err).Is(model.ErrMatrixNotFound)
}

func TestMatrixUseCase_BuildMatrix(t *testing.T) {
	uc := usecase.New(memory.New(), nil)

	t.Run("with orientation", func(t *testing.T) {
		cells, err := uc.Matrix.BuildMatrix(matrix.BalancedFAIR(), matrix.OrientReverseRows)
		gt.NoError(t, err).Required()
		// reversing the rendered rows restores grid order
		gt.Value(t, cells[0][0].Row).Equal(0)
		gt.Value(t, cells[2][2].Level.Name).Equal("High")
	})

	t.Run("invalid definition", func(t *testing.T) {
		def := matrix.BalancedFAIR()
		def.Grid[1] = []int{0, 1}
		_, err := uc.Matrix.BuildMatrix(def)
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("nil definition", func(t *testing.T) {
		_, err := uc.Matrix.BuildMatrix(nil)
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("unknown orientation", func(t *testing.T) {
		_, err := uc.Matrix.BuildMatrix(matrix.BalancedFAIR(), "flip")
		gt.Error(t, err).Is(usecase.ErrValidation)
	})
}

func TestMatrixUseCase_ResolveRisk(t *testing.T) {
	uc := usecase.New(memory.New(), nil)

	level, err := uc.Matrix.ResolveRisk("balanced-fair", 1, 1)
	gt.NoError(t, err).Required()
	gt.Value(t, level.Name).Equal("Medium")

	_, err = uc.Matrix.ResolveRisk("balanced-fair", 5, 1)
	gt.Error(t, err).Is(usecase.ErrValidation)
}

func TestMatrixUseCase_Orient(t *testing.T) {
	uc := usecase.New(memory.New(), nil)

	built, err := uc.Matrix.BuildMatrixByID("balanced-fair")
	gt.NoError(t, err).Required()

	oriented, err := uc.Matrix.Orient(built.Cells, matrix.OrientTranspose)
	gt.NoError(t, err).Required()
	gt.Array(t, oriented).Length(3)
	gt.Array(t, built.Cells[0]).Length(3)

	_, err = uc.Matrix.Orient(built.Cells, "flip")
	gt.Error(t, err).Is(usecase.ErrValidation)
}
