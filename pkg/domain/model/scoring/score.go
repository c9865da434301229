package scoring

import (
	"math"

	"github.com/secmon-lab/grcengine/pkg/domain/types"
)

// Result is the outcome of scoring a set of answers
type Result struct {
	LikelihoodScore float64                   `json:"likelihood_score"`
	ImpactScore     float64                   `json:"impact_score"`
	LikelihoodBand  types.Band                `json:"likelihood_band"`
	ImpactBand      types.Band                `json:"impact_band"`
	OverallRating   types.Rating              `json:"overall_rating"`
	GroupScores     map[types.GroupID]float64 `json:"group_scores"`
}

// Average returns the arithmetic mean of scores rounded to 3 decimals, half
// away from zero. An empty slice yields NaN; callers guard against it.
func Average(scores []float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return math.Round(sum/float64(len(scores))*1000) / 1000
}

// Rate combines the two sub-scores into the overall severity
func Rate(likelihood, impact float64) types.Rating {
	return types.CombineBands(types.BandOf(likelihood), types.BandOf(impact))
}

// Compute scores answers against form. Sub-scores average every factor of
// every group in the category, not the group averages.
func Compute(form *Form, answers Answers) (*Result, error) {
	if err := form.ValidateAnswers(answers); err != nil {
		return nil, err
	}

	var likelihood, impact []float64
	groups := make(map[types.GroupID]float64, len(form.Groups))

	for _, g := range form.Groups {
		scores := make([]float64, 0, len(g.Factors))
		for _, factor := range g.Factors {
			scores = append(scores, float64(answers[factor.ID]))
		}
		groups[g.ID] = Average(scores)

		switch g.Category {
		case types.FactorCategoryLikelihood:
			likelihood = append(likelihood, scores...)
		case types.FactorCategoryImpact:
			impact = append(impact, scores...)
		}
	}

	result := &Result{
		LikelihoodScore: Average(likelihood),
		ImpactScore:     Average(impact),
		GroupScores:     groups,
	}
	result.LikelihoodBand = types.BandOf(result.LikelihoodScore)
	result.ImpactBand = types.BandOf(result.ImpactScore)
	result.OverallRating = types.CombineBands(result.LikelihoodBand, result.ImpactBand)

	return result, nil
}
