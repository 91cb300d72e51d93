package main

import (
	"context"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/blockdoc/internal/schema"
	"github.com/g5becks/blockdoc/internal/source"
	"github.com/g5becks/blockdoc/internal/ui"
)

func newCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate simplified block JSON and report issues",
		ArgsUsage: "[paths|globs...]",
		Action:    checkAction,
	}
}

func checkAction(_ context.Context, cmd *cli.Command) error {
	inputs, err := source.Resolve(cmd.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}

	failed := 0
	for _, input := range inputs {
		issues, checkErr := schema.Check(input.Data)
		if checkErr != nil {
			return checkErr
		}
		ui.RenderIssues(os.Stdout, input.Name, issues)
		if len(issues) > 0 {
			failed++
		}
	}

	if failed > 0 {
		return oops.
			Code("CHECK_FAILED").
			With("inputs", failed).
			Hint("Fix the reported issues; 'blockdoc normalize' will still degrade them softly").
			Errorf("%d input(s) failed validation", failed)
	}
	return nil
}
