package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/cli/config"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"github.com/secmon-lab/grcengine/pkg/repository/memory"
	"github.com/secmon-lab/grcengine/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdMatrix() *cli.Command {
	var libCfg config.Library
	var matrixID string
	var file string
	var orient []string
	var noColor bool
	var format string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Matrix ID in the library",
			Destination: &matrixID,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "JSON matrix definition file",
			Destination: &file,
		},
		&cli.StringSliceFlag{
			Name:        "orient",
			Usage:       "Orientation applied after building (reverse_rows, reverse_cols, transpose); repeatable, applied in order",
			Destination: &orient,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable cell colors",
			Sources:     cli.EnvVars("NO_COLOR"),
			Destination: &noColor,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format (text, json)",
			Value:       "text",
			Destination: &format,
		},
	}
	flags = append(flags, libCfg.Flags()...)

	return &cli.Command{
		Name:  "matrix",
		Usage: "Build and print a risk matrix",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if (matrixID == "") == (file == "") {
				return goerr.New("exactly one of --id and --file is required")
			}

			ops := make([]matrix.Orientation, len(orient))
			for i, o := range orient {
				ops[i] = matrix.Orientation(o)
			}

			title, cells, err := buildMatrix(&libCfg, types.MatrixID(matrixID), file, ops)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			switch format {
			case "json":
				return writeJSON(w, map[string]any{"name": title, "matrix": cells})
			case "text":
				renderMatrix(w, title, cells, noColor)
				return nil
			default:
				return goerr.New("unknown output format", goerr.V("format", format))
			}
		},
	}
}

func buildMatrix(libCfg *config.Library, id types.MatrixID, file string, ops []matrix.Orientation) (string, [][]matrix.Cell, error) {
	library, err := libCfg.Configure()
	if err != nil {
		return "", nil, goerr.Wrap(err, "failed to load library")
	}
	uc := usecase.New(memory.New(), library)

	if id != "" {
		built, err := uc.Matrix.BuildMatrixByID(id, ops...)
		if err != nil {
			return "", nil, err
		}
		return built.Record.Name, built.Cells, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(file)
	if err != nil {
		return "", nil, goerr.Wrap(err, "failed to read matrix definition", goerr.V("path", file))
	}
	def, err := matrix.ParseDefinition(data)
	if err != nil {
		return "", nil, goerr.Wrap(err, "failed to parse matrix definition", goerr.V("path", file))
	}

	cells, err := uc.Matrix.BuildMatrix(def, ops...)
	if err != nil {
		return "", nil, err
	}
	return file, cells, nil
}

// renderMatrix prints one line per row, each cell padded to the widest
// label and filled with its level color
func renderMatrix(w io.Writer, title string, cells [][]matrix.Cell, noColor bool) {
	width := 0
	legend := map[string]matrix.Level{}
	var order []string
	for _, row := range cells {
		for _, cell := range row {
			label := cell.Level.Label()
			width = max(width, len(label))
			if _, ok := legend[label]; !ok {
				legend[label] = cell.Level
				order = append(order, label)
			}
		}
	}

	_, _ = fmt.Fprintln(w, title)
	for _, row := range cells {
		parts := make([]string, len(row))
		for i, cell := range row {
			text := " " + padRight(cell.Level.Label(), width) + " "
			parts[i] = paint(cell.Level.HexColor, text, noColor)
		}
		_, _ = fmt.Fprintln(w, strings.Join(parts, " "))
	}

	_, _ = fmt.Fprintln(w)
	for _, label := range order {
		level := legend[label]
		_, _ = fmt.Fprintf(w, "%s %s\n", paint(level.HexColor, " "+padRight(label, width)+" ", noColor), level.Name)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// paint sets the background of text to a #RRGGBB color. Unparsable colors
// leave the text as is.
func paint(hex, text string, noColor bool) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return text
	}

	c := color.BgRGB(r, g, b).AddRGB(0, 0, 0)
	if noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(text)
}

func parseHexColor(hex string) (int, int, int, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}
