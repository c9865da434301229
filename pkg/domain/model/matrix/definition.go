package matrix

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// Definition is the declarative form of a risk matrix, the json_definition
// payload of a matrix record. Grid rows follow Probability (row 0 is the
// lowest probability), grid columns follow Impact and grid values index Risk.
type Definition struct {
	Probability []Level `json:"probability"`
	Impact      []Level `json:"impact"`
	Risk        []Level `json:"risk"`
	Grid        [][]int `json:"grid"`
}

// ParseDefinition decodes and validates a json_definition payload
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, goerr.Wrap(err, "failed to parse risk matrix definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the grid shape against the axes and every grid value
// against the risk levels
func (d *Definition) Validate() error {
	if len(d.Probability) == 0 || len(d.Impact) == 0 || len(d.Risk) == 0 {
		return goerr.Wrap(ErrInvalidDefinition, "probability, impact and risk levels are required",
			goerr.V("probability", len(d.Probability)),
			goerr.V("impact", len(d.Impact)),
			goerr.V("risk", len(d.Risk)),
		)
	}

	if len(d.Grid) != len(d.Probability) {
		return goerr.Wrap(ErrInvalidDefinition, "grid row count must match probability levels",
			goerr.V("rows", len(d.Grid)),
			goerr.V("probability", len(d.Probability)),
		)
	}

	for i, row := range d.Grid {
		if len(row) != len(d.Impact) {
			return goerr.Wrap(ErrInvalidDefinition, "grid column count must match impact levels",
				goerr.V("row", i),
				goerr.V("cols", len(row)),
				goerr.V("impact", len(d.Impact)),
			)
		}
		for j, v := range row {
			if v < 0 || v >= len(d.Risk) {
				return goerr.Wrap(ErrInvalidDefinition, "grid value out of range of risk levels",
					goerr.V("row", i),
					goerr.V("col", j),
					goerr.V("value", v),
					goerr.V("risk", len(d.Risk)),
				)
			}
		}
	}

	return nil
}

// Build renders the grid against the risk levels
func (d *Definition) Build() ([][]Cell, error) {
	return BuildRiskMatrix(d.Grid, d.Risk)
}

// RiskAt returns the risk level at the given probability and impact ranks
func (d *Definition) RiskAt(probability, impact int) (Level, error) {
	if probability < 0 || probability >= len(d.Grid) {
		return Level{}, goerr.Wrap(ErrLevelOutOfRange, "probability out of range",
			goerr.V("probability", probability),
			goerr.V("levels", len(d.Grid)),
		)
	}
	row := d.Grid[probability]
	if impact < 0 || impact >= len(row) {
		return Level{}, goerr.Wrap(ErrLevelOutOfRange, "impact out of range",
			goerr.V("impact", impact),
			goerr.V("levels", len(row)),
		)
	}
	v := row[impact]
	if v < 0 || v >= len(d.Risk) {
		return Level{}, goerr.Wrap(ErrLevelOutOfRange, "grid value out of range of risk levels",
			goerr.V("value", v),
			goerr.V("levels", len(d.Risk)),
		)
	}
	return d.Risk[v], nil
}

// BalancedFAIR returns the built-in 3x3 balanced FAIR matrix
func BalancedFAIR() *Definition {
	lmh := func() []Level {
		return []Level{
			{Abbreviation: "L", Name: "Low", HexColor: "#A8D08D"},
			{Abbreviation: "M", Name: "Medium", HexColor: "#FFD966"},
			{Abbreviation: "H", Name: "High", HexColor: "#F4B183"},
		}
	}

	return &Definition{
		Probability: lmh(),
		Impact:      lmh(),
		Risk:        lmh(),
		Grid: [][]int{
			{0, 0, 1},
			{0, 1, 1},
			{1, 1, 2},
		},
	}
}
