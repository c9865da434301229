package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"github.com/secmon-lab/grcengine/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const defaultBatchLimit = 8

type ScoringUseCase struct {
	library    *model.Library
	batchLimit int
}

func NewScoringUseCase(library *model.Library, batchLimit int) *ScoringUseCase {
	if batchLimit <= 0 {
		batchLimit = defaultBatchLimit
	}
	return &ScoringUseCase{
		library:    library,
		batchLimit: batchLimit,
	}
}

// ScoreRequest is one answer set to be scored against a form
type ScoreRequest struct {
	FormID  types.FormID
	Answers scoring.Answers
}

func (uc *ScoringUseCase) ListForms() []*scoring.Form {
	return uc.library.Forms()
}

func (uc *ScoringUseCase) GetForm(id types.FormID) (*scoring.Form, error) {
	form, err := uc.library.Form(id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get scoring form", goerr.V(FormIDKey, id))
	}
	return form, nil
}

// Score computes the rating of one answer set
func (uc *ScoringUseCase) Score(ctx context.Context, formID types.FormID, answers scoring.Answers) (*scoring.Result, error) {
	form, err := uc.GetForm(formID)
	if err != nil {
		return nil, err
	}

	if len(answers) == 0 {
		return nil, goerr.Wrap(ErrValidation, "answers are required", goerr.V(FormIDKey, formID))
	}

	result, err := scoring.Compute(form, answers)
	if err != nil {
		if isAnswerError(err) {
			return nil, goerr.Wrap(ErrValidation, "invalid answers",
				goerr.V(FormIDKey, formID),
				goerr.V("cause", err.Error()),
			)
		}
		return nil, goerr.Wrap(err, "failed to compute score", goerr.V(FormIDKey, formID))
	}

	logging.From(ctx).Debug("scored answers",
		"form_id", formID,
		"likelihood", result.LikelihoodScore,
		"impact", result.ImpactScore,
		"rating", result.OverallRating,
	)

	return result, nil
}

// ScoreBatch scores every request concurrently. Results keep the order of
// requests; the first failure cancels the remaining work.
func (uc *ScoringUseCase) ScoreBatch(ctx context.Context, requests []ScoreRequest) ([]*scoring.Result, error) {
	results := make([]*scoring.Result, len(requests))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.batchLimit)

	for i, req := range requests {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := uc.Score(ctx, req.FormID, req.Answers)
			if err != nil {
				return goerr.Wrap(err, "failed to score batch entry", goerr.V("index", i))
			}
			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func isAnswerError(err error) bool {
	return errors.Is(err, scoring.ErrUnknownFactor) ||
		errors.Is(err, scoring.ErrInvalidAnswer) ||
		errors.Is(err, scoring.ErrDisabledChoice) ||
		errors.Is(err, scoring.ErrMissingAnswer)
}
