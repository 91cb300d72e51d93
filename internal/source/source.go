// Package source resolves CLI arguments into document inputs: files, glob
// patterns, stdin, or a URL.
package source

import (
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"
)

// Input is one document to normalize.
type Input struct {
	Name string
	Data []byte
}

// Resolve expands args into concrete inputs. An empty argument list or a
// bare "-" reads stdin; arguments containing glob metacharacters are
// expanded with doublestar.
func Resolve(args []string, stdin io.Reader) ([]Input, error) {
	if len(args) == 0 {
		return readStdin(stdin)
	}

	var inputs []Input
	for _, arg := range args {
		if arg == "-" {
			stdinInputs, err := readStdin(stdin)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, stdinInputs...)
			continue
		}

		paths, err := expand(arg)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return nil, oops.
					Code("INPUT_UNREADABLE").
					With("path", path).
					Wrapf(readErr, "reading input file %q", path)
			}
			inputs = append(inputs, Input{Name: path, Data: data})
		}
	}

	if len(inputs) == 0 {
		return nil, oops.
			Code("NO_INPUT").
			Hint("Pass file paths, glob patterns, or pipe content on stdin").
			Errorf("no inputs matched")
	}

	return inputs, nil
}

func expand(arg string) ([]string, error) {
	if !strings.ContainsAny(arg, "*?[{") {
		return []string{arg}, nil
	}

	matches, err := doublestar.FilepathGlob(arg)
	if err != nil {
		return nil, oops.
			Code("BAD_PATTERN").
			With("pattern", arg).
			Hint("Use doublestar glob syntax, e.g. 'docs/**/*.json'").
			Wrapf(err, "expanding pattern %q", arg)
	}
	return matches, nil
}

func readStdin(stdin io.Reader) ([]Input, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, oops.Code("INPUT_UNREADABLE").Wrapf(err, "reading stdin")
	}
	return []Input{{Name: "stdin", Data: data}}, nil
}
