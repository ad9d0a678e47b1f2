package cli

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// storeConfig holds the flags shared by commands that read declarations.
type storeConfig struct {
	dir      string
	phoneMin int
	phoneMax int
}

func (x *storeConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "forms",
			Aliases:     []string{"d"},
			Usage:       "Directory of form declarations (.yaml, .json, .toml)",
			Value:       "forms",
			Sources:     cli.EnvVars(envPrefix + "FORMS"),
			Destination: &x.dir,
		},
		&cli.IntFlag{
			Name:        "phone-min",
			Category:    "phone",
			Usage:       "Minimum phone number length",
			Sources:     cli.EnvVars(envPrefix + "PHONE_MIN"),
			Destination: &x.phoneMin,
		},
		&cli.IntFlag{
			Name:        "phone-max",
			Category:    "phone",
			Usage:       "Maximum phone number length (0 disables the bound)",
			Value:       validation.DefaultPhoneRule.MaxLength,
			Sources:     cli.EnvVars(envPrefix + "PHONE_MAX"),
			Destination: &x.phoneMax,
		},
	}
}

func (x *storeConfig) Validator() *validation.Validator {
	return validation.New(validation.WithPhoneRule(validation.PhoneRule{
		MinLength: x.phoneMin,
		MaxLength: x.phoneMax,
	}))
}

func (x *storeConfig) Load() (*config.Store, error) {
	if strings.TrimSpace(x.dir) == "" {
		return nil, goerr.New("forms directory is required")
	}
	info, err := os.Stat(x.dir)
	if err != nil {
		return nil, goerr.Wrap(err, "cannot read forms directory", goerr.V(config.PathKey, x.dir))
	}
	if !info.IsDir() {
		return nil, goerr.New("forms path is not a directory", goerr.V(config.PathKey, x.dir))
	}

	loader := config.NewLoader(builtinValidators()...)
	store, err := loader.LoadFS(os.DirFS(x.dir))
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		return nil, goerr.New("no form declarations found", goerr.V(config.PathKey, x.dir))
	}
	return store, nil
}

func (x *storeConfig) Form(id string) (model.Form, error) {
	store, err := x.Load()
	if err != nil {
		return model.Form{}, err
	}
	f, ok := store.Form(id)
	if !ok {
		return model.Form{}, goerr.New("form not found",
			goerr.V(config.FormIDKey, id),
			goerr.V("available", store.IDs()))
	}
	return f, nil
}
