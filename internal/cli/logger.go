package cli

import (
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

type loggerConfig struct {
	level  string
	format string
}

func (x *loggerConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Category:    "logging",
			Usage:       "Log level [trace|debug|info|warn|error]",
			Value:       "info",
			Sources:     cli.EnvVars(envPrefix + "LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Category:    "logging",
			Usage:       "Log format [console|json]",
			Value:       "console",
			Sources:     cli.EnvVars(envPrefix + "LOG_FORMAT"),
			Destination: &x.format,
		},
	}
}

// Configure builds a logger writing to w.
func (x *loggerConfig) Configure(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(x.level))
	if err != nil {
		return zerolog.Nop(), goerr.Wrap(err, "invalid log level", goerr.V("level", x.level))
	}

	switch x.format {
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
	default:
		return zerolog.Nop(), goerr.New("invalid log format", goerr.V("format", x.format))
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
