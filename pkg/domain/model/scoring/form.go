package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
)

// SlotCount is the number of ordinal choice slots of every factor. A slot
// index is the severity of the factor when that slot is chosen.
const SlotCount = 10

// Factor is one ordinal question of a factor group. An empty choice label
// marks a disabled slot.
type Factor struct {
	ID        types.FactorID
	PromptKey string
	Choices   [SlotCount]string
}

// Selectable reports whether slot i can be chosen
func (f *Factor) Selectable(i int) bool {
	return i >= 0 && i < SlotCount && f.Choices[i] != ""
}

// FactorGroup is a named set of factors contributing to one sub-score
type FactorGroup struct {
	ID        types.GroupID
	PromptKey string
	Category  types.FactorCategory
	Factors   []Factor
}

// Form is a named collection of factor groups
type Form struct {
	ID     types.FormID
	Name   string
	Groups []FactorGroup
}

// Answers maps a factor to the chosen slot index
type Answers map[types.FactorID]int

// Validate checks IDs, categories and that every factor has at least one
// selectable slot. Factor IDs must be unique across the form.
func (f *Form) Validate() error {
	if err := f.ID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidForm, "invalid form ID", goerr.V("cause", err.Error()))
	}

	var hasLikelihood, hasImpact bool
	groupIDs := make(map[types.GroupID]bool)
	factorIDs := make(map[types.FactorID]bool)

	for _, g := range f.Groups {
		if err := g.ID.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidForm, "invalid group ID", goerr.V("form_id", f.ID), goerr.V("group_id", g.ID))
		}
		if groupIDs[g.ID] {
			return goerr.Wrap(ErrInvalidForm, "duplicate group ID", goerr.V("form_id", f.ID), goerr.V("group_id", g.ID))
		}
		groupIDs[g.ID] = true

		switch g.Category {
		case types.FactorCategoryLikelihood:
			hasLikelihood = true
		case types.FactorCategoryImpact:
			hasImpact = true
		default:
			return goerr.Wrap(ErrInvalidForm, "invalid group category",
				goerr.V("form_id", f.ID), goerr.V("group_id", g.ID), goerr.V("category", g.Category))
		}

		if len(g.Factors) == 0 {
			return goerr.Wrap(ErrInvalidForm, "group has no factors", goerr.V("form_id", f.ID), goerr.V("group_id", g.ID))
		}

		for i := range g.Factors {
			factor := &g.Factors[i]
			if err := factor.ID.Validate(); err != nil {
				return goerr.Wrap(ErrInvalidForm, "invalid factor ID", goerr.V("form_id", f.ID), goerr.V("factor_id", factor.ID))
			}
			if factorIDs[factor.ID] {
				return goerr.Wrap(ErrInvalidForm, "duplicate factor ID", goerr.V("form_id", f.ID), goerr.V("factor_id", factor.ID))
			}
			factorIDs[factor.ID] = true

			selectable := false
			for slot := range factor.Choices {
				if factor.Selectable(slot) {
					selectable = true
					break
				}
			}
			if !selectable {
				return goerr.Wrap(ErrInvalidForm, "factor has no selectable choice", goerr.V("form_id", f.ID), goerr.V("factor_id", factor.ID))
			}
		}
	}

	if !hasLikelihood || !hasImpact {
		return goerr.Wrap(ErrInvalidForm, "form needs at least one likelihood and one impact group", goerr.V("form_id", f.ID))
	}

	return nil
}

// Factor looks up a factor by ID
func (f *Form) Factor(id types.FactorID) (*FactorGroup, *Factor) {
	for gi := range f.Groups {
		g := &f.Groups[gi]
		for fi := range g.Factors {
			if g.Factors[fi].ID == id {
				return g, &g.Factors[fi]
			}
		}
	}
	return nil, nil
}

// ValidateAnswers checks that every factor of the form is answered with a
// selectable slot and that no unknown factor is present
func (f *Form) ValidateAnswers(answers Answers) error {
	for id, slot := range answers {
		_, factor := f.Factor(id)
		if factor == nil {
			return goerr.Wrap(ErrUnknownFactor, "answer refers to unknown factor", goerr.V("form_id", f.ID), goerr.V("factor_id", id))
		}
		if slot < 0 || slot >= SlotCount {
			return goerr.Wrap(ErrInvalidAnswer, "answer must be between 0 and 9", goerr.V("factor_id", id), goerr.V("answer", slot))
		}
		if !factor.Selectable(slot) {
			return goerr.Wrap(ErrDisabledChoice, "answer hits a disabled slot", goerr.V("factor_id", id), goerr.V("answer", slot))
		}
	}

	for _, g := range f.Groups {
		for _, factor := range g.Factors {
			if _, ok := answers[factor.ID]; !ok {
				return goerr.Wrap(ErrMissingAnswer, "factor is not answered", goerr.V("group_id", g.ID), goerr.V("factor_id", factor.ID))
			}
		}
	}

	return nil
}
