package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
)

func cmdPrompt(logger *zerolog.Logger) *cli.Command {
	var storeCfg storeConfig
	var formID string
	var output string
	var outPath string
	var sanitize bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "form",
			Aliases:     []string{"f"},
			Usage:       "Form ID to fill in",
			Required:    true,
			Destination: &formID,
		},
		&cli.StringFlag{
			Name:        "output-format",
			Usage:       "Output format [json|form|pretty]",
			Value:       string(tui.OutputFormatJSON),
			Destination: &output,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the result to a file instead of stdout",
			Destination: &outPath,
		},
		&cli.BoolFlag{
			Name:        "sanitize",
			Usage:       "Strip markup from free-text answers",
			Destination: &sanitize,
		},
	}
	flags = append(flags, storeCfg.Flags()...)

	return &cli.Command{
		Name:    "prompt",
		Aliases: []string{"p"},
		Usage:   "Fill in a form interactively",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := storeCfg.Form(formID)
			if err != nil {
				return err
			}

			format := tui.OutputFormat(output)
			switch format {
			case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
			default:
				return goerr.New("unsupported output format", goerr.V("format", output))
			}

			stateOpts := []form.Option{
				form.WithValidator(storeCfg.Validator()),
				form.WithLogger(*logger),
			}
			if sanitize {
				stateOpts = append(stateOpts, form.WithStrictSanitizer())
			}
			renderer := tui.New(
				tui.WithOutputFormat(format),
				tui.WithStateOptions(stateOpts...),
				tui.WithLogger(*logger),
				tui.WithTheme(tui.Theme{InfoPrefix: "» ", ErrorPrefix: "✗ "}),
				tui.WithConfirmSubmit("Submit?"),
			)

			payload, err := renderer.Render(ctx, f, nil)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, payload, 0o644); err != nil {
					return goerr.Wrap(err, "cannot write output", goerr.V("path", outPath))
				}
				logger.Info().Str("path", outPath).Msg("form written")
				return nil
			}
			_, err = fmt.Fprintln(c.Root().Writer, string(payload))
			return err
		},
	}
}
