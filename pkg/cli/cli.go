package cli

import (
	"context"
	"io"
	"os"

	"github.com/secmon-lab/grcengine/pkg/cli/config"
	"github.com/secmon-lab/grcengine/pkg/utils/errutil"
	"github.com/secmon-lab/grcengine/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	if err := newApp(version, os.Stdout).Run(ctx, args); err != nil {
		errutil.Handle(ctx, err, "failed to run app")
		return err
	}
	return nil
}

func newApp(version string, w io.Writer) *cli.Command {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closer func()
	var flush func()

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "grcengine",
		Usage:   "Risk matrix builder and OWASP style risk scoring engine",
		Version: version,
		Writer:  w,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			fl, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			flush = fl

			logging.Default().Debug("Starting grcengine",
				"version", version,
				"logger", loggerCfg,
				"sentry", sentryCfg,
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if flush != nil {
				flush()
			}
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdMatrix(),
			cmdScore(),
			cmdValidate(),
			cmdMigrate(),
		},
	}
}
