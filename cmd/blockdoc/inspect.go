package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/g5becks/blockdoc/internal/config"
	"github.com/g5becks/blockdoc/internal/normalize"
	"github.com/g5becks/blockdoc/internal/source"
	"github.com/g5becks/blockdoc/internal/ui"
)

func newInspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Normalize and summarize document structure",
		ArgsUsage: "[paths|globs...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to config file"},
			&cli.BoolFlag{Name: "json", Usage: "Emit the summary as JSON"},
		},
		Action: inspectAction,
	}
}

func inspectAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return err
	}

	inputs, err := source.Resolve(cmd.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}

	normalizer := normalize.New(normalize.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		UnwrapDepth:     cfg.UnwrapDepth,
	})

	for _, input := range inputs {
		document := normalizer.NormalizeBytes(input.Data)
		summary := ui.Summarize(input.Name, document)
		if err := ui.RenderSummary(os.Stdout, summary, cmd.Bool("json")); err != nil {
			return err
		}
	}
	return nil
}
