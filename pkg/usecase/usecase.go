package usecase

import (
	"github.com/secmon-lab/grcengine/pkg/domain/interfaces"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
)

type UseCases struct {
	repo       interfaces.Repository
	library    *model.Library
	batchLimit int

	Matrix     *MatrixUseCase
	Scoring    *ScoringUseCase
	Assessment *AssessmentUseCase
}

type Option func(*UseCases)

// WithBatchLimit bounds the number of answer sets scored concurrently
func WithBatchLimit(n int) Option {
	return func(uc *UseCases) {
		uc.batchLimit = n
	}
}

// New wires the use cases. A nil library falls back to the built-in one.
func New(repo interfaces.Repository, library *model.Library, opts ...Option) *UseCases {
	if library == nil {
		library = model.NewDefaultLibrary()
	}

	uc := &UseCases{
		repo:       repo,
		library:    library,
		batchLimit: defaultBatchLimit,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Matrix = NewMatrixUseCase(library)
	uc.Scoring = NewScoringUseCase(library, uc.batchLimit)
	uc.Assessment = NewAssessmentUseCase(repo, uc.Matrix, uc.Scoring)

	return uc
}
