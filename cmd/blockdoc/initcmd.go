package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

const starterConfig = `# blockdoc configuration

# Language applied to code blocks that name none.
default_language = "plain"

# How many times a JSON-encoded string input is unwrapped.
unwrap_depth = 1

# JSON indent width for pretty output.
indent = 2

# Directory batch results are written to. Empty means stdout.
output = ""

# Timeout for --url downloads, in seconds.
fetch_timeout_seconds = 30

# Default worker count for batch normalization.
parallel = 3
`

func newInitCommand() *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Create a starter blockdoc.toml in the current directory",
		Action: initAction,
	}
}

func initAction(_ context.Context, _ *cli.Command) error {
	const path = "blockdoc.toml"

	if _, err := os.Stat(path); err == nil {
		return oops.
			Code("CONFIG_EXISTS").
			With("path", path).
			Hint("Edit the existing file instead").
			Errorf("blockdoc.toml already exists")
	}

	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return oops.Code("OUTPUT_UNWRITABLE").Wrapf(err, "writing %s", path)
	}

	fmt.Println("created blockdoc.toml")
	return nil
}
