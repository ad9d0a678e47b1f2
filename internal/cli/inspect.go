package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/model"
)

func cmdInspect(logger *zerolog.Logger) *cli.Command {
	var storeCfg storeConfig
	var formID string
	var format string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "form",
			Aliases:     []string{"f"},
			Usage:       "Form ID to describe (lists all forms when empty)",
			Destination: &formID,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Print the declaration as [yaml|json|toml] instead of a table",
			Destination: &format,
		},
	}
	flags = append(flags, storeCfg.Flags()...)

	return &cli.Command{
		Name:    "inspect",
		Aliases: []string{"i"},
		Usage:   "List form declarations or describe one",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			store, err := storeCfg.Load()
			if err != nil {
				return err
			}

			if formID == "" {
				listForms(w, store)
				return nil
			}
			f, err := storeCfg.Form(formID)
			if err != nil {
				return err
			}
			logger.Debug().Str("form", f.ID).Int("fields", f.Len()).Msg("inspect")

			if format != "" {
				parsed, err := config.ParseFormat(format)
				if err != nil {
					return err
				}
				data, err := config.Encode(f, parsed)
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			}
			describeForm(w, f)
			return nil
		},
	}
}

func listForms(w io.Writer, store *config.Store) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tFIELDS")
	for _, id := range store.IDs() {
		f, _ := store.Form(id)
		fmt.Fprintf(tw, "%s\t%s\t%d\n", f.ID, f.Title, f.Len())
	}
	tw.Flush()
}

func describeForm(w io.Writer, f model.Form) {
	header := color.New(color.Bold)
	header.Fprintf(w, "%s", f.ID)
	if f.Title != "" {
		fmt.Fprintf(w, " - %s", f.Title)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tTYPE\tREQUIRED\tKEYBOARD\tDETAILS")
	for _, field := range f.Fields() {
		required := ""
		if field.Required {
			required = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			field.Key,
			field.DisplayLabel(),
			field.Type.Normalize(),
			required,
			field.KeyboardType(),
			fieldDetails(field),
		)
	}
	tw.Flush()
}

func fieldDetails(field model.Field) string {
	var parts []string
	if len(field.DropdownOptions) > 0 {
		parts = append(parts, "options="+strings.Join(field.DropdownOptions, "|"))
	}
	if field.Placeholder != "" {
		parts = append(parts, "placeholder="+field.Placeholder)
	}
	if layout := field.Layout(); layout != "" {
		parts = append(parts, "layout="+layout)
	}
	if field.Validator != "" {
		parts = append(parts, "validator="+field.Validator)
	}
	if field.InitialValue != "" {
		parts = append(parts, "initial="+field.InitialValue)
	}
	return strings.Join(parts, " ")
}
