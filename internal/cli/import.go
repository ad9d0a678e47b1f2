package cli

import (
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/openapi"
)

func cmdImport(logger *zerolog.Logger) *cli.Command {
	var docPath string
	var operationID string
	var formID string
	var format string
	var outPath string

	return &cli.Command{
		Name:  "import",
		Usage: "Derive a form declaration from an OpenAPI operation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "openapi",
				Usage:       "OpenAPI document path",
				Required:    true,
				Sources:     cli.EnvVars(envPrefix + "OPENAPI"),
				Destination: &docPath,
			},
			&cli.StringFlag{
				Name:        "operation",
				Usage:       "Operation ID (lists operations when empty)",
				Destination: &operationID,
			},
			&cli.StringFlag{
				Name:        "id",
				Usage:       "Form ID for the declaration (defaults to the operation ID)",
				Destination: &formID,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Declaration format [yaml|json|toml]",
				Value:       string(config.FormatYAML),
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Write the declaration to a file instead of stdout",
				Destination: &outPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			doc, err := openapi.LoadFile(ctx, docPath)
			if err != nil {
				return err
			}

			if operationID == "" {
				_, err := w.Write([]byte(strings.Join(openapi.OperationIDs(doc), "\n") + "\n"))
				return err
			}

			f, err := openapi.FormFromOperation(doc, operationID)
			if err != nil {
				return err
			}
			if formID != "" {
				f.ID = formID
			}

			parsed, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			if parsed == config.FormatAuto {
				parsed = config.FormatYAML
			}
			data, err := config.Encode(f, parsed)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return goerr.Wrap(err, "cannot write declaration", goerr.V("path", outPath))
				}
				logger.Info().Str("path", outPath).Str("operation", operationID).Msg("declaration written")
				return nil
			}
			_, err = w.Write(data)
			return err
		},
	}
}
