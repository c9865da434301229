package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grcengine/pkg/cli"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
)

// writeAnswers writes the highest enabled slot of every OWASP factor
func writeAnswers(t *testing.T, override map[string]int) string {
	t.Helper()

	var sb strings.Builder
	for _, g := range scoring.OWASPForm().Groups {
		for _, f := range g.Factors {
			slot, ok := override[string(f.ID)]
			if !ok {
				for slot = scoring.SlotCount - 1; f.Choices[slot] == ""; slot-- {
				}
			}
			fmt.Fprintf(&sb, "%s = %d\n", f.ID, slot)
		}
	}

	path := filepath.Join(t.TempDir(), "answers.toml")
	gt.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600)).Required()
	return path
}

func TestRun_ScoreCommand(t *testing.T) {
	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(),
		[]string{"grcengine", "score", "--answers", writeAnswers(t, nil)}, &buf)
	gt.NoError(t, err).Required()

	gt.String(t, buf.String()).Contains("Likelihood: 9.000 (HIGH)")
	gt.String(t, buf.String()).Contains("Impact:     8.750 (HIGH)")
	gt.String(t, buf.String()).Contains("Severity:   CRITICAL")
	gt.String(t, buf.String()).Contains("threat_agent")
}

func TestRun_ScoreCommand_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(),
		[]string{"grcengine", "score", "--answers", writeAnswers(t, nil), "--format", "json"}, &buf)
	gt.NoError(t, err).Required()
	gt.String(t, buf.String()).Contains(`"overall_rating": "CRITICAL"`)
}

func TestRun_ScoreCommand_DisabledSlot(t *testing.T) {
	err := cli.RunWithWriter(context.Background(),
		[]string{"grcengine", "score", "--answers", writeAnswers(t, map[string]int{"motive": 5})}, &bytes.Buffer{})
	gt.Error(t, err)
}

func TestRun_ScoreCommand_UnknownForm(t *testing.T) {
	err := cli.RunWithWriter(context.Background(),
		[]string{"grcengine", "score", "--form", "missing", "--answers", writeAnswers(t, nil)}, &bytes.Buffer{})
	gt.Error(t, err)
}
