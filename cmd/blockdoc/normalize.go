package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/g5becks/blockdoc/internal/config"
	"github.com/g5becks/blockdoc/internal/doc"
	"github.com/g5becks/blockdoc/internal/normalize"
	"github.com/g5becks/blockdoc/internal/source"
)

func newNormalizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "Normalize documents into editor JSON",
		ArgsUsage: "[paths|globs...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to config file"},
			&cli.StringFlag{Name: "url", Usage: "Fetch the document from a URL instead of files"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write results into this directory"},
			&cli.BoolFlag{Name: "compact", Usage: "Emit compact JSON"},
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Usage: "Maximum parallel files (0 = config default)"},
		},
		Action: normalizeAction,
	}
}

func normalizeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return err
	}

	inputs, err := collectInputs(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	normalizer := normalize.New(normalize.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		UnwrapDepth:     cfg.UnwrapDepth,
	})

	outDir := cmd.String("out")
	if outDir == "" {
		outDir = cfg.Output
	}
	indent := cfg.Indent
	if cmd.Bool("compact") {
		indent = 0
	}

	if outDir == "" {
		for _, input := range inputs {
			if err := writeDocument(os.Stdout, normalizer.NormalizeBytes(input.Data), indent); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return oops.Code("OUTPUT_UNWRITABLE").With("dir", outDir).Wrapf(err, "creating output directory")
	}

	parallel := int(cmd.Int("parallel"))
	if parallel <= 0 {
		parallel = cfg.Parallel
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)
	for _, input := range inputs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return writeDocumentFile(outDir, input, normalizer.NormalizeBytes(input.Data), indent)
		})
	}
	return group.Wait()
}

func collectInputs(ctx context.Context, cmd *cli.Command, cfg *config.Config) ([]source.Input, error) {
	if url := cmd.String("url"); url != "" {
		input, err := source.Fetch(ctx, url, time.Duration(cfg.FetchTimeoutSecs)*time.Second)
		if err != nil {
			return nil, err
		}
		return []source.Input{input}, nil
	}
	return source.Resolve(cmd.Args().Slice(), os.Stdin)
}

func writeDocument(w *os.File, document *doc.Node, indent int) error {
	encoder := json.NewEncoder(w)
	if indent > 0 {
		encoder.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := encoder.Encode(document); err != nil {
		return oops.Code("JSON_ERROR").Wrapf(err, "encoding document")
	}
	return nil
}

func writeDocumentFile(outDir string, input source.Input, document *doc.Node, indent int) error {
	name := outputName(input.Name)
	path := filepath.Join(outDir, name)

	file, err := os.Create(path)
	if err != nil {
		return oops.Code("OUTPUT_UNWRITABLE").With("path", path).Wrapf(err, "creating output file")
	}
	defer func() { _ = file.Close() }()

	return writeDocument(file, document, indent)
}

// outputName maps an input name to a .json output filename. URL and stdin
// inputs get safe fallbacks.
func outputName(inputName string) string {
	base := filepath.Base(inputName)
	if base == "" || base == "." || base == "/" {
		base = "document"
	}
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".json"
}
