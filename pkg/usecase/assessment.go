package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/interfaces"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"github.com/secmon-lab/grcengine/pkg/utils/logging"
)

type AssessmentUseCase struct {
	repo    interfaces.Repository
	matrix  *MatrixUseCase
	scoring *ScoringUseCase
}

func NewAssessmentUseCase(repo interfaces.Repository, matrixUC *MatrixUseCase, scoringUC *ScoringUseCase) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:    repo,
		matrix:  matrixUC,
		scoring: scoringUC,
	}
}

// AssessmentInput holds the caller supplied fields of an assessment.
// Probability and Impact must be given together. Answers require FormID.
type AssessmentInput struct {
	Name        string
	Description string
	MatrixID    types.MatrixID
	Probability *int
	Impact      *int
	FormID      types.FormID
	Answers     scoring.Answers
}

// evaluate validates input and resolves the derived fields
func (uc *AssessmentUseCase) evaluate(ctx context.Context, in *AssessmentInput) (*model.Assessment, error) {
	if in.Name == "" {
		return nil, goerr.Wrap(ErrValidation, "assessment name is required")
	}
	if in.MatrixID == "" {
		return nil, goerr.Wrap(ErrValidation, "matrix ID is required")
	}
	if _, err := uc.matrix.GetMatrix(in.MatrixID); err != nil {
		return nil, goerr.Wrap(ErrValidation, "unknown matrix", goerr.V(MatrixIDKey, in.MatrixID))
	}

	assessment := &model.Assessment{
		Name:        in.Name,
		Description: in.Description,
		MatrixID:    in.MatrixID,
		FormID:      in.FormID,
		Answers:     in.Answers,
	}

	switch {
	case in.Probability != nil && in.Impact != nil:
		level, err := uc.matrix.ResolveRisk(in.MatrixID, *in.Probability, *in.Impact)
		if err != nil {
			return nil, err
		}
		p, i := *in.Probability, *in.Impact
		assessment.Probability = &p
		assessment.Impact = &i
		assessment.RiskLevel = level

	case in.Probability != nil || in.Impact != nil:
		return nil, goerr.Wrap(ErrValidation, "probability and impact must be set together")
	}

	switch {
	case in.FormID != "":
		if _, err := uc.scoring.GetForm(in.FormID); err != nil {
			return nil, goerr.Wrap(ErrValidation, "unknown scoring form", goerr.V(FormIDKey, in.FormID))
		}
		result, err := uc.scoring.Score(ctx, in.FormID, in.Answers)
		if err != nil {
			return nil, err
		}
		assessment.Result = result

	case len(in.Answers) > 0:
		return nil, goerr.Wrap(ErrValidation, "answers require a scoring form")
	}

	return assessment, nil
}

func (uc *AssessmentUseCase) CreateAssessment(ctx context.Context, in *AssessmentInput) (*model.Assessment, error) {
	assessment, err := uc.evaluate(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Assessment().Create(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment")
	}

	logging.From(ctx).Info("assessment created",
		"assessment_id", created.ID,
		"matrix_id", created.MatrixID,
	)
	return created, nil
}

func (uc *AssessmentUseCase) UpdateAssessment(ctx context.Context, id types.AssessmentID, in *AssessmentInput) (*model.Assessment, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidation, "invalid assessment ID", goerr.V(AssessmentIDKey, id))
	}

	assessment, err := uc.evaluate(ctx, in)
	if err != nil {
		return nil, err
	}
	assessment.ID = id

	updated, err := uc.repo.Assessment().Update(ctx, assessment)
	if err != nil {
		return nil, wrapRepositoryError(err, "failed to update assessment", id)
	}

	return updated, nil
}

func (uc *AssessmentUseCase) GetAssessment(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidation, "invalid assessment ID", goerr.V(AssessmentIDKey, id))
	}

	assessment, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, wrapRepositoryError(err, "failed to get assessment", id)
	}
	return assessment, nil
}

// ListAssessments lists all assessments, or only those of matrixID when it is set
func (uc *AssessmentUseCase) ListAssessments(ctx context.Context, matrixID types.MatrixID) ([]*model.Assessment, error) {
	if matrixID != "" {
		assessments, err := uc.repo.Assessment().ListByMatrix(ctx, matrixID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list assessments", goerr.V(MatrixIDKey, matrixID))
		}
		return assessments, nil
	}

	assessments, err := uc.repo.Assessment().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments")
	}
	return assessments, nil
}

func (uc *AssessmentUseCase) DeleteAssessment(ctx context.Context, id types.AssessmentID) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid assessment ID", goerr.V(AssessmentIDKey, id))
	}

	if err := uc.repo.Assessment().Delete(ctx, id); err != nil {
		return wrapRepositoryError(err, "failed to delete assessment", id)
	}
	return nil
}

func wrapRepositoryError(err error, msg string, id types.AssessmentID) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrAssessmentNotFound, msg, goerr.V(AssessmentIDKey, id))
	}
	return goerr.Wrap(err, msg, goerr.V(AssessmentIDKey, id))
}
