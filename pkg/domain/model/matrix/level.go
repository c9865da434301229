package matrix

// Level is a named severity rung of a matrix axis or of the risk scale.
// Its position in the owning sequence is its rank (0 = lowest); the other
// fields are presentational.
type Level struct {
	Abbreviation string `json:"abbreviation" toml:"abbreviation"`
	Name         string `json:"name" toml:"name"`
	Description  string `json:"description" toml:"description"`
	HexColor     string `json:"hexcolor,omitempty" toml:"hexcolor"`
}

// Label returns the abbreviation, or the name when no abbreviation is set
func (l Level) Label() string {
	if l.Abbreviation != "" {
		return l.Abbreviation
	}
	return l.Name
}
