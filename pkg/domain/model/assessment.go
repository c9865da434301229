package model

import (
	"time"

	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
)

// Assessment is the persisted evaluation of one risk scenario. Probability
// and Impact are ranks on the matrix axes; RiskLevel is resolved from them.
// Result is set when the scenario was scored with a form.
type Assessment struct {
	ID          types.AssessmentID
	Name        string
	Description string

	MatrixID    types.MatrixID
	Probability *int
	Impact      *int
	RiskLevel   *matrix.Level

	FormID  types.FormID
	Answers scoring.Answers
	Result  *scoring.Result

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Copy returns a deep copy of the assessment
func (a *Assessment) Copy() *Assessment {
	c := *a
	if a.Probability != nil {
		p := *a.Probability
		c.Probability = &p
	}
	if a.Impact != nil {
		i := *a.Impact
		c.Impact = &i
	}
	if a.RiskLevel != nil {
		lv := *a.RiskLevel
		c.RiskLevel = &lv
	}
	if a.Answers != nil {
		c.Answers = make(scoring.Answers, len(a.Answers))
		for k, v := range a.Answers {
			c.Answers[k] = v
		}
	}
	if a.Result != nil {
		r := *a.Result
		if a.Result.GroupScores != nil {
			r.GroupScores = make(map[types.GroupID]float64, len(a.Result.GroupScores))
			for k, v := range a.Result.GroupScores {
				r.GroupScores[k] = v
			}
		}
		c.Result = &r
	}
	return &c
}
