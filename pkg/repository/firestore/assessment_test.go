package firestore_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"github.com/secmon-lab/grcengine/pkg/repository/firestore"
)

func TestAssessmentCollectionName(t *testing.T) {
	gt.Value(t, firestore.AssessmentCollectionName("")).Equal("assessments")
	gt.Value(t, firestore.AssessmentCollectionName("staging")).Equal("staging_assessments")
}

func TestAssessmentDocumentConversion(t *testing.T) {
	p, i := 0, 2
	now := time.Now().UTC()
	orig := &model.Assessment{
		ID:          types.NewAssessmentID(),
		Name:        "credential stuffing",
		MatrixID:    "balanced-fair",
		Probability: &p,
		Impact:      &i,
		RiskLevel:   &matrix.Level{Abbreviation: "M", Name: "Medium"},
		FormID:      scoring.OWASPFormID,
		Answers:     scoring.Answers{"size": 9},
		Result: &scoring.Result{
			LikelihoodScore: 7.5,
			LikelihoodBand:  types.BandHigh,
			OverallRating:   types.RatingHigh,
			GroupScores:     map[types.GroupID]float64{"vulnerability": 5.75},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc := firestore.ToAssessmentDocument(orig)
	gt.Value(t, doc.MatrixID).Equal("balanced-fair")
	gt.Value(t, *doc.Impact).Equal(int64(2))
	gt.Value(t, doc.Answers["size"]).Equal(int64(9))
	gt.Value(t, doc.Result.OverallRating).Equal("HIGH")

	got := firestore.FromAssessmentDocument(doc)
	gt.Value(t, got).Equal(orig)
}

func TestAssessmentDocumentConversion_Empty(t *testing.T) {
	got := firestore.FromAssessmentDocument(firestore.ToAssessmentDocument(&model.Assessment{Name: "bare"}))
	gt.Value(t, got.Probability).Nil()
	gt.Value(t, got.Answers).Nil()
	gt.Value(t, got.Result).Nil()
	gt.Value(t, got.Name).Equal("bare")
}
