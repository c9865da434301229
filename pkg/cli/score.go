package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/grcengine/pkg/cli/config"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"github.com/secmon-lab/grcengine/pkg/repository/memory"
	"github.com/secmon-lab/grcengine/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdScore() *cli.Command {
	var libCfg config.Library
	var formID string
	var answersPath string
	var format string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "form",
			Usage:       "Scoring form ID",
			Value:       string(scoring.OWASPFormID),
			Destination: &formID,
		},
		&cli.StringFlag{
			Name:        "answers",
			Aliases:     []string{"a"},
			Usage:       "TOML file mapping factor IDs to slot indexes",
			Required:    true,
			Destination: &answersPath,
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
		Name:  "score",
		Usage: "Score a set of answers against a form",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			answers, err := loadAnswers(answersPath)
			if err != nil {
				return err
			}

			library, err := libCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load library")
			}
			uc := usecase.New(memory.New(), library)

			result, err := uc.Scoring.Score(ctx, types.FormID(formID), answers)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			switch format {
			case "json":
				return writeJSON(w, result)
			case "text":
				renderResult(w, result)
				return nil
			default:
				return goerr.New("unknown output format", goerr.V("format", format))
			}
		},
	}
}

// loadAnswers reads a flat TOML table such as `skill_level = 6`
func loadAnswers(path string) (scoring.Answers, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read answers file", goerr.V("path", path))
	}

	var answers scoring.Answers
	if err := toml.Unmarshal(data, &answers); err != nil {
		return nil, goerr.Wrap(err, "failed to parse answers file", goerr.V("path", path))
	}
	return answers, nil
}

func renderResult(w io.Writer, result *scoring.Result) {
	_, _ = fmt.Fprintf(w, "Likelihood: %.3f (%s)\n", result.LikelihoodScore, result.LikelihoodBand)
	_, _ = fmt.Fprintf(w, "Impact:     %.3f (%s)\n", result.ImpactScore, result.ImpactBand)
	_, _ = fmt.Fprintf(w, "Severity:   %s\n", result.OverallRating)

	groups := make([]string, 0, len(result.GroupScores))
	for id := range result.GroupScores {
		groups = append(groups, string(id))
	}
	sort.Strings(groups)

	_, _ = fmt.Fprintln(w)
	for _, id := range groups {
		_, _ = fmt.Fprintf(w, "  %-20s %.3f\n", id, result.GroupScores[types.GroupID(id)])
	}
}
