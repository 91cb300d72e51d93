package source_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/g5becks/blockdoc/internal/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestResolve_StdinWhenNoArgs(t *testing.T) {
	inputs, err := source.Resolve(nil, strings.NewReader("piped content"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("inputs = %d, want 1", len(inputs))
	}
	if inputs[0].Name != "stdin" || string(inputs[0].Data) != "piped content" {
		t.Errorf("got %q/%q", inputs[0].Name, inputs[0].Data)
	}
}

func TestResolve_DashReadsStdin(t *testing.T) {
	inputs, err := source.Resolve([]string{"-"}, strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(inputs) != 1 || inputs[0].Name != "stdin" {
		t.Errorf("got %+v, want one stdin input", inputs)
	}
}

func TestResolve_FilePaths(t *testing.T) {
	tempDir := t.TempDir()
	first := filepath.Join(tempDir, "a.json")
	second := filepath.Join(tempDir, "b.md")
	writeFile(t, first, `[{"type":"divider"}]`)
	writeFile(t, second, "# Title")

	inputs, err := source.Resolve([]string{first, second}, strings.NewReader(""))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(inputs))
	}
	if inputs[0].Name != first || string(inputs[0].Data) != `[{"type":"divider"}]` {
		t.Errorf("first input = %q/%q", inputs[0].Name, inputs[0].Data)
	}
}

func TestResolve_GlobExpansion(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "one.json"), "{}")
	writeFile(t, filepath.Join(tempDir, "two.json"), "{}")
	writeFile(t, filepath.Join(tempDir, "skip.txt"), "x")

	inputs, err := source.Resolve([]string{filepath.Join(tempDir, "*.json")}, strings.NewReader(""))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(inputs) != 2 {
		t.Errorf("inputs = %d, want the two json files", len(inputs))
	}
}

func TestResolve_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")
	if _, err := source.Resolve([]string{missing}, strings.NewReader("")); err == nil {
		t.Error("Resolve() should fail for a missing file")
	}
}

func TestResolve_GlobWithNoMatches(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "*.json")
	if _, err := source.Resolve([]string{pattern}, strings.NewReader("")); err == nil {
		t.Error("Resolve() should fail when nothing matches")
	}
}
