package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

func cmdValidate(logger *zerolog.Logger) *cli.Command {
	var storeCfg storeConfig
	var formID string
	var valuesPath string
	var sets []string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "form",
			Aliases:     []string{"f"},
			Usage:       "Form ID to validate against",
			Required:    true,
			Destination: &formID,
		},
		&cli.StringFlag{
			Name:        "values",
			Usage:       "YAML or JSON file with a key/value map",
			Destination: &valuesPath,
		},
		&cli.StringSliceFlag{
			Name:        "set",
			Usage:       "Field value as key=value (can be specified multiple times)",
			Destination: &sets,
		},
	}
	flags = append(flags, storeCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate values against a form declaration",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := storeCfg.Form(formID)
			if err != nil {
				return err
			}
			values, err := collectValues(valuesPath, sets)
			if err != nil {
				return err
			}
			if err := checkKeys(f, values); err != nil {
				return err
			}

			report := storeCfg.Validator().ValidateForm(f, values)
			logger.Debug().
				Str("form", f.ID).
				Int("values", len(values)).
				Int("issues", len(report.Issues)).
				Msg("validated")

			printReport(c.Root().Writer, f, report)
			if !report.Valid() {
				return report.Err()
			}
			return nil
		},
	}
}

// collectValues merges the values file with --set pairs; pairs win.
func collectValues(path string, sets []string) (map[string]string, error) {
	values := make(map[string]string)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "cannot read values file", goerr.V("path", path))
		}
		var raw map[string]*string
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, goerr.Wrap(err, "cannot parse values file", goerr.V("path", path))
		}
		for key, value := range raw {
			if value != nil {
				values[key] = *value
			}
		}
	}
	for _, pair := range sets {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, goerr.New("expected key=value", goerr.V("set", pair))
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, nil
}

// checkKeys rejects values for keys the form does not declare.
func checkKeys(f model.Form, values map[string]string) error {
	var unknown []string
	for key := range values {
		if _, ok := f.Field(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return goerr.Wrap(form.ErrUnknownField, "values reference undeclared fields",
		goerr.V(config.FormIDKey, f.ID),
		goerr.V("keys", unknown))
}

func printReport(w io.Writer, f model.Form, report validation.Report) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	dim := color.New(color.Faint)

	title := f.ID
	if f.Title != "" {
		title = fmt.Sprintf("%s (%s)", f.Title, f.ID)
	}
	fmt.Fprintln(w, title)

	for _, field := range f.Fields() {
		issue, found := report.Issue(field.Key)
		if !found {
			ok.Fprintf(w, "  ✓ %s\n", field.Key)
			continue
		}
		bad.Fprintf(w, "  ✗ %s: %s", field.Key, issue.Message)
		dim.Fprintf(w, " [%s]\n", issue.Kind)
	}

	if report.Valid() {
		ok.Fprintln(w, "valid")
		return
	}
	bad.Fprintf(w, "%d issue(s)\n", len(report.Issues))
}
