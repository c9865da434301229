package types

import "fmt"

// Rating is the overall risk severity of the OWASP Risk Rating Methodology
type Rating string

const (
	RatingNote     Rating = "NOTE"
	RatingLow      Rating = "LOW"
	RatingMedium   Rating = "MEDIUM"
	RatingHigh     Rating = "HIGH"
	RatingCritical Rating = "CRITICAL"
)

// severityMatrix is indexed by [likelihood band][impact band]
var severityMatrix = [3][3]Rating{
	{RatingNote, RatingLow, RatingMedium},
	{RatingLow, RatingMedium, RatingHigh},
	{RatingMedium, RatingHigh, RatingCritical},
}

// AllRatings returns all ratings in ascending order
func AllRatings() []Rating {
	return []Rating{
		RatingNote,
		RatingLow,
		RatingMedium,
		RatingHigh,
		RatingCritical,
	}
}

// CombineBands looks up the overall severity for a likelihood/impact pair.
// Invalid bands yield an empty rating.
func CombineBands(likelihood, impact Band) Rating {
	l, i := likelihood.Rank(), impact.Rank()
	if l < 0 || i < 0 {
		return ""
	}
	return severityMatrix[l][i]
}

// IsValid checks if the rating is valid
func (r Rating) IsValid() bool {
	switch r {
	case RatingNote,
		RatingLow,
		RatingMedium,
		RatingHigh,
		RatingCritical:
		return true
	default:
		return false
	}
}

func (r Rating) String() string {
	return string(r)
}

// ParseRating parses a string into a Rating
func ParseRating(s string) (Rating, error) {
	rating := Rating(s)
	if !rating.IsValid() {
		return "", fmt.Errorf("invalid rating: %s", s)
	}
	return rating, nil
}
