package types

import "fmt"

// Band is the qualitative level of a likelihood or impact score
type Band string

const (
	BandLow    Band = "LOW"
	BandMedium Band = "MEDIUM"
	BandHigh   Band = "HIGH"
)

// Upper bounds (inclusive) of the LOW and MEDIUM bands on the 0..9 scale
const (
	BandLowMax    = 3.0
	BandMediumMax = 6.0
)

// AllBands returns all bands in ascending order
func AllBands() []Band {
	return []Band{
		BandLow,
		BandMedium,
		BandHigh,
	}
}

// BandOf classifies a 0..9 score. Boundaries belong to the lower band.
func BandOf(score float64) Band {
	switch {
	case score <= BandLowMax:
		return BandLow
	case score <= BandMediumMax:
		return BandMedium
	default:
		return BandHigh
	}
}

// IsValid checks if the band is valid
func (b Band) IsValid() bool {
	switch b {
	case BandLow,
		BandMedium,
		BandHigh:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the band, -1 if invalid
func (b Band) Rank() int {
	switch b {
	case BandLow:
		return 0
	case BandMedium:
		return 1
	case BandHigh:
		return 2
	default:
		return -1
	}
}

func (b Band) String() string {
	return string(b)
}

// ParseBand parses a string into a Band
func ParseBand(s string) (Band, error) {
	band := Band(s)
	if !band.IsValid() {
		return "", fmt.Errorf("invalid band: %s", s)
	}
	return band, nil
}
