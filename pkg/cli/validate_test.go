package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grcengine/pkg/cli"
)

func TestRun_ValidateCommand_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "library.toml")
	content := `
[[matrix]]
id = "two-by-two"
name = "2x2"
json = '''{
  "probability": [{"name": "Low"}, {"name": "High"}],
  "impact": [{"name": "Low"}, {"name": "High"}],
  "risk": [{"name": "Accept"}, {"name": "Treat"}],
  "grid": [[0, 0], [0, 1]]
}'''
`
	err := os.WriteFile(configPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	var buf bytes.Buffer
	err = cli.RunWithWriter(context.Background(), []string{"grcengine", "validate", "--config", configPath}, &buf)
	gt.NoError(t, err).Required()
	gt.String(t, buf.String()).Contains("OK: 2 matrices, 1 forms")
}

func TestRun_ValidateCommand_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "library.toml")

	// Invalid: grid references a missing risk level
	content := `
[[matrix]]
id = "broken"
name = "Broken"
json = '''{
  "probability": [{"name": "Low"}],
  "impact": [{"name": "Low"}],
  "risk": [{"name": "Accept"}],
  "grid": [[4]]
}'''
`
	err := os.WriteFile(configPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(), []string{"grcengine", "validate", "--config", configPath}, "test")
	gt.Error(t, err)
}

func TestRun_ValidateCommand_BuiltinsOnly(t *testing.T) {
	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(), []string{"grcengine", "validate"}, &buf)
	gt.NoError(t, err).Required()
	gt.String(t, buf.String()).Contains("OK: 1 matrices, 1 forms")
}
