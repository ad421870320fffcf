package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

const starterConfig = `# doxmd configuration
output = "doxygen_md_output"

[sources.api]
type = "dir"
path = "docs/xml"
patterns = ["**/*.xml"]

# [sources.remote]
# type = "url"
# url = "https://example.com/doxygen/index.xml"

[display]
format = "table"
limit = 50
description_length = 80
`

func newInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter doxmd.toml in the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing doxmd.toml",
			},
		},
		Action: initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	const configName = "doxmd.toml"

	if _, err := os.Stat(configName); err == nil && !cmd.Bool("force") {
		return oops.
			Code("CONFIG_EXISTS").
			With("path", configName).
			Hint("Pass --force to overwrite").
			Errorf("%s already exists", configName)
	}

	if err := os.WriteFile(configName, []byte(starterConfig), 0o644); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", configName).
			Wrapf(err, "writing starter config")
	}

	fmt.Printf("Wrote %s\n", configName)
	return nil
}
