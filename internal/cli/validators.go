package cli

import (
	"errors"
	"regexp"
	"strings"

	"github.com/goliatone/go-formfield/pkg/config"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// builtinValidators are the named custom rules declarations may reference.
func builtinValidators() []config.Option {
	return []config.Option{
		config.WithCustomValidator("uppercase", func(value string) error {
			if value != strings.ToUpper(value) {
				return errors.New("Must be uppercase")
			}
			return nil
		}),
		config.WithCustomValidator("slug", func(value string) error {
			if !slugPattern.MatchString(value) {
				return errors.New("Use lowercase letters, digits and single dashes")
			}
			return nil
		}),
		config.WithCustomValidator("no-spaces", func(value string) error {
			if strings.ContainsAny(value, " \t\n") {
				return errors.New("Must not contain spaces")
			}
			return nil
		}),
	}
}
