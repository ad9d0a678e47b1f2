// Package cli wires the formfield command line: declaration loading,
// validation reports, terminal prompting, the HTTP server and OpenAPI
// import.
package cli

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

const envPrefix = "FORMFIELD_"

// Run executes the CLI with args, writing command output to out and logs to
// errOut.
func Run(ctx context.Context, args []string, version string, out, errOut io.Writer) error {
	var loggerCfg loggerConfig
	var noColor bool
	logger := zerolog.Nop()

	app := &cli.Command{
		Name:      "formfield",
		Usage:     "Declarative form field validation",
		Version:   version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: append(loggerCfg.Flags(), &cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars(envPrefix + "NO_COLOR"),
			Destination: &noColor,
		}),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			l, err := loggerCfg.Configure(errOut)
			if err != nil {
				return ctx, err
			}
			logger = l
			if noColor {
				color.NoColor = true
			}
			logger.Debug().Str("version", version).Msg("starting formfield")
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdValidate(&logger),
			cmdPrompt(&logger),
			cmdServe(&logger),
			cmdInspect(&logger),
			cmdImport(&logger),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logger.Error().Err(err).Msg("formfield failed")
		return err
	}
	return nil
}
