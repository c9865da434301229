package interfaces

import (
	"context"

	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
)

type AssessmentRepository interface {
	// Create stores a new assessment, assigning its ID and timestamps
	Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error)

	// List retrieves all assessments, newest first
	List(ctx context.Context) ([]*model.Assessment, error)

	// ListByMatrix retrieves assessments evaluated against a matrix, newest first
	ListByMatrix(ctx context.Context, matrixID types.MatrixID) ([]*model.Assessment, error)

	// Update replaces an existing assessment, keeping ID and CreatedAt
	Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// Delete deletes an assessment by ID
	Delete(ctx context.Context, id types.AssessmentID) error
}
