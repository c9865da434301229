package config_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grcengine/pkg/cli/config"
	"github.com/secmon-lab/grcengine/pkg/utils/logging"
)

const matrixJSON = `{
  "probability": [
    {"abbreviation": "L", "name": "Low", "hexcolor": "#00FF00"},
    {"abbreviation": "H", "name": "High", "hexcolor": "#FF0000"}
  ],
  "impact": [
    {"abbreviation": "L", "name": "Low", "hexcolor": "#00FF00"},
    {"abbreviation": "H", "name": "High", "hexcolor": "#FF0000"}
  ],
  "risk": [
    {"abbreviation": "A", "name": "Accept", "hexcolor": "#00FF00"},
    {"abbreviation": "T", "name": "Treat", "hexcolor": "#FF0000"}
  ],
  "grid": [[0, 0], [0, 1]]
}`

const formTOML = `
[[form]]
id = "lite"
name = "Lite"

  [[form.group]]
  id = "threat"
  category = "likelihood"

    [[form.group.factor]]
    id = "skill"
    choices = ["", "Low", "", "", "", "", "", "", "", "High"]

  [[form.group]]
  id = "damage"
  category = "impact"

    [[form.group.factor]]
    id = "loss"
    choices = ["", "", "Some", "", "", "", "", "Severe", "", ""]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755)).Required()
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "matrices/two.json", matrixJSON)
	path := writeFile(t, dir, "library.toml", `
[[matrix]]
id = "two-by-two"
name = "2x2"
definition = "matrices/two.json"

[[matrix]]
id = "inline"
name = "Inline"
json = '''`+matrixJSON+`'''
`+formTOML)

	lib, err := config.LoadLibrary(path)
	gt.NoError(t, err).Required()

	// built-ins come first
	matrices := lib.Matrices()
	gt.Array(t, matrices).Length(3)
	gt.Value(t, matrices[0].ID).Equal("balanced-fair")
	gt.Value(t, matrices[1].ID).Equal("two-by-two")
	gt.Value(t, matrices[2].Definition.Risk[1].Name).Equal("Treat")

	form, err := lib.Form("lite")
	gt.NoError(t, err).Required()
	gt.Array(t, form.Groups).Length(2)
	gt.Value(t, form.Groups[1].Factors[0].Choices[7]).Equal("Severe")

	_, err = lib.Form("owasp")
	gt.NoError(t, err)
}

func TestLoadLibrary_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/forms.toml", formTOML)
	writeFile(t, dir, "a/matrix.toml", `
[[matrix]]
id = "balanced-fair"
name = "Overridden"
json = '''`+matrixJSON+`'''
`)
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := config.CollectFiles([]string{dir})
	gt.NoError(t, err).Required()
	gt.Array(t, files).Length(2)

	lib, err := config.LoadLibrary(dir)
	gt.NoError(t, err).Required()

	record, err := lib.Matrix("balanced-fair")
	gt.NoError(t, err).Required()
	gt.Value(t, record.Name).Equal("Overridden")
	gt.Array(t, lib.Matrices()).Length(1)
	gt.Array(t, lib.Forms()).Length(2)
}

func TestLoadLibrary_NoPaths(t *testing.T) {
	lib, err := config.LoadLibrary()
	gt.NoError(t, err).Required()
	gt.Array(t, lib.Matrices()).Length(1)
	gt.Array(t, lib.Forms()).Length(1)
}

func TestLoadLibrary_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed TOML",
			content: `[[matrix]`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "duplicate matrix",
			content: `
[[matrix]]
id = "dup"
name = "A"
json = '''` + matrixJSON + `'''

[[matrix]]
id = "dup"
name = "B"
json = '''` + matrixJSON + `'''
`,
			wantErr: config.ErrDuplicateMatrixID,
		},
		{
			name: "missing name",
			content: `
[[matrix]]
id = "nameless"
json = '''` + matrixJSON + `'''
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "no definition",
			content: `
[[matrix]]
id = "empty"
name = "Empty"
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "grid out of range",
			content: `
[[matrix]]
id = "broken"
name = "Broken"
json = '''{"probability":[{"name":"L"}],"impact":[{"name":"L"}],"risk":[{"name":"L"}],"grid":[[3]]}'''
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "short choices",
			content: `
[[form]]
id = "short"
name = "Short"
  [[form.group]]
  id = "threat"
  category = "likelihood"
    [[form.group.factor]]
    id = "skill"
    choices = ["", "Low"]
`,
			wantErr: config.ErrInvalidChoices,
		},
		{
			name: "form without impact group",
			content: `
[[form]]
id = "half"
name = "Half"
  [[form.group]]
  id = "threat"
  category = "likelihood"
    [[form.group.factor]]
    id = "skill"
    choices = ["", "Low", "", "", "", "", "", "", "", "High"]
`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "library.toml", tt.content)
			_, err := config.LoadLibrary(path)
			gt.Error(t, err).Is(tt.wantErr)
		})
	}
}

func TestLoadLibrary_MissingPath(t *testing.T) {
	_, err := config.LoadLibrary(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestLogger_Configure(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	path := filepath.Join(t.TempDir(), "app.log")
	closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
	gt.NoError(t, err).Required()

	logging.Default().Debug("hello", "key", "value")
	closer()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Contains(`"msg":"hello"`)
}

func TestLogger_ConfigureInvalid(t *testing.T) {
	_, err := config.NewLoggerForTest("loud", "json", "stderr").Configure()
	gt.Error(t, err).Is(config.ErrInvalidConfig)

	_, err = config.NewLoggerForTest("info", "xml", "stderr").Configure()
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}

func TestRepository_Configure(t *testing.T) {
	ctx := context.Background()

	repo, err := config.NewRepositoryForTest("memory", "").Configure(ctx)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Close())

	_, err = config.NewRepositoryForTest("firestore", "").Configure(ctx)
	gt.Error(t, err).Is(config.ErrInvalidConfig)

	_, err = config.NewRepositoryForTest("sqlite", "").Configure(ctx)
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}

func TestSentry_DisabledAndRedacted(t *testing.T) {
	cfg := config.Sentry{DSN: "https://public@sentry.example.com/1", Environment: "test"}

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	logger.Info("sentry", "config", cfg)
	gt.String(t, buf.String()).NotContains("public@sentry.example.com")
	gt.String(t, buf.String()).Contains("test")

	var disabled config.Sentry
	gt.Bool(t, disabled.Enabled()).False()
	flush, err := disabled.Configure("dev")
	gt.NoError(t, err).Required()
	flush()
}
