package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[types.AssessmentID]*model.Assessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[types.AssessmentID]*model.Assessment),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := assessment.Copy()
	created.ID = types.NewAssessmentID()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.assessments[created.ID] = created
	return created.Copy(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return assessment.Copy(), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessments := make([]*model.Assessment, 0, len(r.assessments))
	for _, a := range r.assessments {
		assessments = append(assessments, a.Copy())
	}
	sortNewestFirst(assessments)

	return assessments, nil
}

func (r *assessmentRepository) ListByMatrix(ctx context.Context, matrixID types.MatrixID) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var assessments []*model.Assessment
	for _, a := range r.assessments {
		if a.MatrixID == matrixID {
			assessments = append(assessments, a.Copy())
		}
	}
	sortNewestFirst(assessments)

	return assessments, nil
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[assessment.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", assessment.ID))
	}

	updated := assessment.Copy()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assessments[updated.ID] = updated
	return updated.Copy(), nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id types.AssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[id]; !exists {
		return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	delete(r.assessments, id)
	return nil
}

func sortNewestFirst(assessments []*model.Assessment) {
	sort.SliceStable(assessments, func(i, j int) bool {
		if assessments[i].CreatedAt.Equal(assessments[j].CreatedAt) {
			return assessments[i].ID < assessments[j].ID
		}
		return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
	})
}
