package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grcengine/pkg/cli"
)

func TestRun_MatrixCommand_Builtin(t *testing.T) {
	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(),
		[]string{"grcengine", "matrix", "--id", "balanced-fair", "--no-color"}, &buf)
	gt.NoError(t, err).Required()

	lines := strings.Split(buf.String(), "\n")
	gt.Value(t, lines[0]).Equal("3x3 balanced FAIR")
	// highest probability row first
	gt.Value(t, lines[1]).Equal(" M   M   H ")
	gt.Value(t, lines[3]).Equal(" L   L   M ")
	gt.String(t, buf.String()).Contains(" H  High")
}

func TestRun_MatrixCommand_Orient(t *testing.T) {
	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(),
		[]string{"grcengine", "matrix", "--id", "balanced-fair", "--orient", "reverse_rows", "--format", "json"}, &buf)
	gt.NoError(t, err).Required()

	var out struct {
		Matrix [][]struct {
			Row int `json:"row"`
			Col int `json:"col"`
		} `json:"matrix"`
	}
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &out)).Required()
	gt.Array(t, out.Matrix).Length(3)
	gt.Value(t, out.Matrix[0][0].Row).Equal(0)
	gt.Value(t, out.Matrix[2][1].Row).Equal(2)
}

func TestRun_MatrixCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.json")
	content := `{
  "probability": [{"abbreviation": "L", "name": "Low"}, {"abbreviation": "H", "name": "High"}],
  "impact": [{"abbreviation": "L", "name": "Low"}, {"abbreviation": "H", "name": "High"}],
  "risk": [{"abbreviation": "A", "name": "Accept", "hexcolor": "#00FF00"}, {"abbreviation": "T", "name": "Treat", "hexcolor": "#FF0000"}],
  "grid": [[0, 0], [0, 1]]
}`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()

	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(),
		[]string{"grcengine", "matrix", "--file", path, "--no-color"}, &buf)
	gt.NoError(t, err).Required()

	lines := strings.Split(buf.String(), "\n")
	gt.Value(t, lines[1]).Equal(" A   T ")
	gt.Value(t, lines[2]).Equal(" A   A ")
}

func TestRun_MatrixCommand_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("neither id nor file", func(t *testing.T) {
		err := cli.RunWithWriter(ctx, []string{"grcengine", "matrix"}, &bytes.Buffer{})
		gt.Error(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := cli.RunWithWriter(ctx, []string{"grcengine", "matrix", "--id", "missing"}, &bytes.Buffer{})
		gt.Error(t, err)
	})

	t.Run("unknown orientation", func(t *testing.T) {
		err := cli.RunWithWriter(ctx, []string{"grcengine", "matrix", "--id", "balanced-fair", "--orient", "flip"}, &bytes.Buffer{})
		gt.Error(t, err)
	})
}

func TestParseHexColor(t *testing.T) {
	r, g, b, ok := cli.ParseHexColor("#F4B183")
	gt.Bool(t, ok).True()
	gt.Value(t, r).Equal(0xF4)
	gt.Value(t, g).Equal(0xB1)
	gt.Value(t, b).Equal(0x83)

	_, _, _, ok = cli.ParseHexColor("red")
	gt.Bool(t, ok).False()
}

func TestIndexConfig(t *testing.T) {
	cfg := cli.IndexConfig("test")
	gt.Array(t, cfg.Collections).Length(1)
	gt.Value(t, cfg.Collections[0].Name).Equal("test_assessments")
	gt.Array(t, cfg.Collections[0].Indexes[0].Fields).Length(2)
}
