package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/cli/config"
	"github.com/secmon-lab/grcengine/pkg/repository/memory"
	"github.com/secmon-lab/grcengine/pkg/usecase"
	"github.com/secmon-lab/grcengine/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var libCfg config.Library

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate library files",
		Flags:   libCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			library, err := libCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "library validation failed")
			}

			// Build every matrix so that rendering problems surface here
			uc := usecase.New(memory.New(), library)
			for _, record := range uc.Matrix.ListMatrices() {
				if _, err := uc.Matrix.BuildMatrixByID(record.ID); err != nil {
					return goerr.Wrap(err, "matrix validation failed")
				}
				logger.Info("Matrix validated", "id", record.ID, "name", record.Name)
			}
			for _, form := range uc.Scoring.ListForms() {
				logger.Info("Form validated", "id", form.ID, "name", form.Name, "groups", len(form.Groups))
			}

			_, _ = fmt.Fprintf(c.Root().Writer, "OK: %d matrices, %d forms\n",
				len(uc.Matrix.ListMatrices()), len(uc.Scoring.ListForms()))
			return nil
		},
	}
}
