package matrix

import "github.com/m-mizutani/goerr/v2"

// Cell is one rendered matrix entry. Row and Col are display coordinates:
// Row is the grid row the cell came from, so after the outer reversal the
// first rendered row carries the highest Row value.
type Cell struct {
	Level Level `json:"level"`
	Row   int   `json:"row"`
	Col   int   `json:"col"`
}

// BuildRiskMatrix resolves every grid value into its level and returns the
// cells with the row order reversed, so that the highest probability row
// comes first. The result has the same dimensions as grid, row by row.
func BuildRiskMatrix(grid [][]int, levels []Level) ([][]Cell, error) {
	cells := make([][]Cell, len(grid))
	for i, row := range grid {
		cells[i] = make([]Cell, len(row))
		for j, v := range row {
			if v < 0 || v >= len(levels) {
				return nil, goerr.Wrap(ErrLevelOutOfRange, "failed to resolve grid cell",
					goerr.V("row", i),
					goerr.V("col", j),
					goerr.V("value", v),
					goerr.V("levels", len(levels)),
				)
			}
			cells[i][j] = Cell{Level: levels[v], Row: i, Col: j}
		}
	}

	return ReverseRows(cells), nil
}
