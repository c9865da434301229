package types

import "fmt"

// FactorCategory tells which sub-score a factor group contributes to
type FactorCategory string

const (
	FactorCategoryLikelihood FactorCategory = "likelihood"
	FactorCategoryImpact     FactorCategory = "impact"
)

// IsValid checks if the category is valid
func (c FactorCategory) IsValid() bool {
	switch c {
	case FactorCategoryLikelihood,
		FactorCategoryImpact:
		return true
	default:
		return false
	}
}

func (c FactorCategory) String() string {
	return string(c)
}

// ParseFactorCategory parses a string into a FactorCategory
func ParseFactorCategory(s string) (FactorCategory, error) {
	c := FactorCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid factor category: %s", s)
	}
	return c, nil
}
