package main

import (
	"context"
	"os"

	"github.com/goliatone/go-formfield/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(context.Background(), os.Args, version, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
