package matrix

import "github.com/m-mizutani/goerr/v2"

// ReverseRows returns a new matrix with the outer order reversed. Rows are
// shared with the input, which is not modified.
func ReverseRows[T any](m [][]T) [][]T {
	out := make([][]T, len(m))
	for i, row := range m {
		out[len(m)-1-i] = row
	}
	return out
}

// ReverseCols returns a new matrix where every row is reversed.
func ReverseCols[T any](m [][]T) [][]T {
	out := make([][]T, len(m))
	for i, row := range m {
		reversed := make([]T, len(row))
		for j, v := range row {
			reversed[len(row)-1-j] = v
		}
		out[i] = reversed
	}
	return out
}

// Transpose swaps the axes of m and then reverses columns and rows of the
// result, which is the orientation the rendered matrices use. The width is
// taken from the first row; missing entries of shorter rows are left as
// zero values. An empty matrix or an empty first row yields an empty matrix.
func Transpose[T any](m [][]T) [][]T {
	if len(m) == 0 || len(m[0]) == 0 {
		return [][]T{}
	}

	rows, cols := len(m), len(m[0])
	t := make([][]T, cols)
	for c := range t {
		t[c] = make([]T, rows)
		for r := 0; r < rows; r++ {
			if c < len(m[r]) {
				t[c][r] = m[r][c]
			}
		}
	}

	return ReverseRows(ReverseCols(t))
}

// Orientation names one of the orientation helpers so that callers can
// request a sequence of them
type Orientation string

const (
	OrientReverseRows Orientation = "reverse_rows"
	OrientReverseCols Orientation = "reverse_cols"
	OrientTranspose   Orientation = "transpose"
)

// IsValid checks if the orientation is known
func (o Orientation) IsValid() bool {
	switch o {
	case OrientReverseRows,
		OrientReverseCols,
		OrientTranspose:
		return true
	default:
		return false
	}
}

// Orient applies the orientations to m from left to right
func Orient[T any](m [][]T, ops ...Orientation) ([][]T, error) {
	for _, op := range ops {
		switch op {
		case OrientReverseRows:
			m = ReverseRows(m)
		case OrientReverseCols:
			m = ReverseCols(m)
		case OrientTranspose:
			m = Transpose(m)
		default:
			return nil, goerr.New("unknown orientation", goerr.V("orientation", op))
		}
	}
	return m, nil
}
