package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AssessmentCollection is the collection name without prefix
const AssessmentCollection = "assessments"

// AssessmentCollectionName returns the assessment collection name for prefix
func AssessmentCollectionName(prefix string) string {
	if prefix != "" {
		return prefix + "_" + AssessmentCollection
	}
	return AssessmentCollection
}

type levelDocument struct {
	Abbreviation string `firestore:"abbreviation"`
	Name         string `firestore:"name"`
	Description  string `firestore:"description"`
	HexColor     string `firestore:"hexcolor"`
}

type resultDocument struct {
	LikelihoodScore float64            `firestore:"likelihood_score"`
	ImpactScore     float64            `firestore:"impact_score"`
	LikelihoodBand  string             `firestore:"likelihood_band"`
	ImpactBand      string             `firestore:"impact_band"`
	OverallRating   string             `firestore:"overall_rating"`
	GroupScores     map[string]float64 `firestore:"group_scores"`
}

type assessmentDocument struct {
	ID          string           `firestore:"id"`
	Name        string           `firestore:"name"`
	Description string           `firestore:"description"`
	MatrixID    string           `firestore:"matrix_id"`
	Probability *int64           `firestore:"probability"`
	Impact      *int64           `firestore:"impact"`
	RiskLevel   *levelDocument   `firestore:"risk_level"`
	FormID      string           `firestore:"form_id"`
	Answers     map[string]int64 `firestore:"answers"`
	Result      *resultDocument  `firestore:"result"`
	CreatedAt   time.Time        `firestore:"created_at"`
	UpdatedAt   time.Time        `firestore:"updated_at"`
}

func toInt64Ptr(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

func toIntPtr(v *int64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func toAssessmentDocument(a *model.Assessment) *assessmentDocument {
	doc := &assessmentDocument{
		ID:          a.ID.String(),
		Name:        a.Name,
		Description: a.Description,
		MatrixID:    a.MatrixID.String(),
		Probability: toInt64Ptr(a.Probability),
		Impact:      toInt64Ptr(a.Impact),
		FormID:      a.FormID.String(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if a.RiskLevel != nil {
		doc.RiskLevel = &levelDocument{
			Abbreviation: a.RiskLevel.Abbreviation,
			Name:         a.RiskLevel.Name,
			Description:  a.RiskLevel.Description,
			HexColor:     a.RiskLevel.HexColor,
		}
	}

	if a.Answers != nil {
		doc.Answers = make(map[string]int64, len(a.Answers))
		for k, v := range a.Answers {
			doc.Answers[k.String()] = int64(v)
		}
	}

	if a.Result != nil {
		doc.Result = &resultDocument{
			LikelihoodScore: a.Result.LikelihoodScore,
			ImpactScore:     a.Result.ImpactScore,
			LikelihoodBand:  a.Result.LikelihoodBand.String(),
			ImpactBand:      a.Result.ImpactBand.String(),
			OverallRating:   a.Result.OverallRating.String(),
			GroupScores:     make(map[string]float64, len(a.Result.GroupScores)),
		}
		for k, v := range a.Result.GroupScores {
			doc.Result.GroupScores[k.String()] = v
		}
	}

	return doc
}

func fromAssessmentDocument(d *assessmentDocument) *model.Assessment {
	a := &model.Assessment{
		ID:          types.AssessmentID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		MatrixID:    types.MatrixID(d.MatrixID),
		Probability: toIntPtr(d.Probability),
		Impact:      toIntPtr(d.Impact),
		FormID:      types.FormID(d.FormID),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}

	if d.RiskLevel != nil {
		a.RiskLevel = &matrix.Level{
			Abbreviation: d.RiskLevel.Abbreviation,
			Name:         d.RiskLevel.Name,
			Description:  d.RiskLevel.Description,
			HexColor:     d.RiskLevel.HexColor,
		}
	}

	if d.Answers != nil {
		a.Answers = make(scoring.Answers, len(d.Answers))
		for k, v := range d.Answers {
			a.Answers[types.FactorID(k)] = int(v)
		}
	}

	if d.Result != nil {
		a.Result = &scoring.Result{
			LikelihoodScore: d.Result.LikelihoodScore,
			ImpactScore:     d.Result.ImpactScore,
			LikelihoodBand:  types.Band(d.Result.LikelihoodBand),
			ImpactBand:      types.Band(d.Result.ImpactBand),
			OverallRating:   types.Rating(d.Result.OverallRating),
			GroupScores:     make(map[types.GroupID]float64, len(d.Result.GroupScores)),
		}
		for k, v := range d.Result.GroupScores {
			a.Result.GroupScores[types.GroupID(k)] = v
		}
	}

	return a
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *assessmentRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(AssessmentCollectionName(r.collectionPrefix))
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	created := assessment.Copy()
	created.ID = types.NewAssessmentID()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.collection().Doc(created.ID.String()).Create(ctx, toAssessmentDocument(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *assessmentRepository) get(ctx context.Context, id types.AssessmentID) (*assessmentDocument, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}
	return &assessmentDoc, nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	doc, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromAssessmentDocument(doc), nil
}

func (r *assessmentRepository) list(ctx context.Context, query firestore.Query) ([]*model.Assessment, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("doc_id", doc.Ref.ID))
		}
		assessments = append(assessments, fromAssessmentDocument(&assessmentDoc))
	}

	return assessments, nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	return r.list(ctx, r.collection().OrderBy("created_at", firestore.Desc))
}

// ListByMatrix requires the composite index declared by the migrate command
func (r *assessmentRepository) ListByMatrix(ctx context.Context, matrixID types.MatrixID) ([]*model.Assessment, error) {
	query := r.collection().
		Where("matrix_id", "==", matrixID.String()).
		OrderBy("created_at", firestore.Desc)
	return r.list(ctx, query)
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	existing, err := r.get(ctx, assessment.ID)
	if err != nil {
		return nil, err
	}

	updated := assessment.Copy()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	if _, err := r.collection().Doc(updated.ID.String()).Set(ctx, toAssessmentDocument(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment", goerr.V("id", updated.ID))
	}

	return updated, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id types.AssessmentID) error {
	if _, err := r.get(ctx, id); err != nil {
		return err
	}

	if _, err := r.collection().Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}

	return nil
}
