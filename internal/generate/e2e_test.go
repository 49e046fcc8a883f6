//go:build cgo

package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"classmap/internal/cache"
	"classmap/internal/diagram"
	"classmap/internal/logging"
)

const dogSource = `class Dog:
    def bark(self) -> str: ...
`

const catSource = `class Cat:
    def meow(self) -> str: ...
`

func writeSource(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSingleFileStdout(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "pets.py", dogSource)

	var out bytes.Buffer
	g := New(Options{
		Path:         file,
		Output:       "-",
		OutputFormat: FormatMmd,
		Direction:    diagram.DefaultDirection,
		Stdout:       &out,
	}, testLogger(), nil)

	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Diagrams != 1 || summary.Written != 1 {
		t.Errorf("summary = %+v", summary)
	}

	got := out.String()
	if !strings.Contains(got, "class Dog {") {
		t.Errorf("missing class body:\n%s", got)
	}
	if !strings.Contains(got, "title: "+file) {
		t.Errorf("expected title header with file path:\n%s", got)
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("expected raw mermaid output ending in }\\n:\n%s", got)
	}
}

func TestRunNoTitle(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "pets.py", dogSource)

	var out bytes.Buffer
	g := New(Options{
		Path:         file,
		Output:       "-",
		OutputFormat: FormatMmd,
		NoTitle:      true,
		Stdout:       &out,
	}, testLogger(), nil)

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(out.String(), "title:") {
		t.Errorf("expected no title header:\n%s", out.String())
	}
	if !strings.HasPrefix(out.String(), "classDiagram\n") {
		t.Errorf("expected diagram to start immediately:\n%s", out.String())
	}
}

func TestRunDirectoryCombined(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "zoo")
	writeSource(t, src, "dog.py", dogSource)
	writeSource(t, src, "cat.py", catSource)
	outDir := filepath.Join(root, "out")

	g := New(Options{
		Path:         src,
		OutputDir:    outDir,
		OutputFormat: FormatMd,
	}, testLogger(), nil)

	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Diagrams != 1 || summary.Written != 1 {
		t.Errorf("summary = %+v", summary)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "zoo.md"))
	if err != nil {
		t.Fatalf("expected combined diagram at zoo.md: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "```mermaid\n") || !strings.HasSuffix(text, "\n```\n") {
		t.Errorf("expected fenced markdown:\n%s", text)
	}
	if !strings.Contains(text, "class Cat {") || !strings.Contains(text, "class Dog {") {
		t.Errorf("expected both classes in combined diagram:\n%s", text)
	}
	if !strings.Contains(text, "title: zoo") {
		t.Errorf("expected root basename title:\n%s", text)
	}
}

func TestRunMultipleFiles(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "zoo")
	writeSource(t, src, "dog.py", dogSource)
	writeSource(t, src, "cat.py", catSource)
	outDir := filepath.Join(root, "out")

	g := New(Options{
		Path:          src,
		MultipleFiles: true,
		OutputDir:     outDir,
		OutputFormat:  FormatMmd,
	}, testLogger(), nil)

	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Diagrams != 2 || summary.Written != 2 {
		t.Errorf("summary = %+v", summary)
	}

	for _, name := range []string{"dog.py.mmd", "cat.py.mmd"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "dog.py.mmd"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "title: dog.py") {
		t.Errorf("expected relative-path title:\n%s", data)
	}
}

func TestRunStdin(t *testing.T) {
	var out bytes.Buffer
	g := New(Options{
		Path:         "-",
		Output:       "-",
		OutputFormat: FormatMmd,
		Stdin:        strings.NewReader(dogSource),
		Stdout:       &out,
	}, testLogger(), nil)

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "classDiagram\n") {
		t.Errorf("expected untitled diagram from stdin:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "+ bark(self) str") {
		t.Errorf("expected method line:\n%s", out.String())
	}
}

func TestRunStdinRejectsMultipleFiles(t *testing.T) {
	g := New(Options{
		Path:          "-",
		MultipleFiles: true,
		Stdin:         strings.NewReader(dogSource),
	}, testLogger(), nil)

	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("expected error for stdin with --multiple-files")
	}
}

func TestRunOutputRejectsMultipleDiagrams(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "dog.py", dogSource)
	writeSource(t, root, "cat.py", catSource)

	g := New(Options{
		Path:          root,
		MultipleFiles: true,
		Output:        "-",
		Stdout:        &bytes.Buffer{},
	}, testLogger(), nil)

	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("expected error for --output with multiple diagrams")
	}
}

func TestRunMissingPath(t *testing.T) {
	g := New(Options{Path: filepath.Join(t.TempDir(), "nope")}, testLogger(), nil)
	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing input path")
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	g := New(Options{Path: t.TempDir()}, testLogger(), nil)
	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("expected error when no Python files are found")
	}
}

func TestRunSkipsEmptyDiagram(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "plain")
	writeSource(t, src, "helpers.py", "def helper(): ...\n")
	outDir := filepath.Join(root, "out")

	g := New(Options{
		Path:      src,
		OutputDir: outDir,
	}, testLogger(), nil)

	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Written != 0 || summary.Skipped != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunWithCache(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "zoo")
	writeSource(t, src, "dog.py", dogSource)

	store, err := cache.Open(filepath.Join(root, ".classmap"), testLogger())
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	defer store.Close()

	run := func() Summary {
		g := New(Options{
			Path:      src,
			OutputDir: filepath.Join(root, "out"),
		}, testLogger(), store)
		summary, err := g.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return summary
	}

	first := run()
	if first.CacheHits != 0 || first.CacheMisses != 1 {
		t.Errorf("first run summary = %+v", first)
	}
	second := run()
	if second.CacheHits != 1 || second.CacheMisses != 0 {
		t.Errorf("second run summary = %+v", second)
	}

	// The cached render must survive the round trip byte for byte.
	firstOut, err := os.ReadFile(filepath.Join(root, "out", "zoo.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(firstOut), "class Dog {") {
		t.Errorf("cached output corrupted:\n%s", firstOut)
	}
}

func TestRunManifest(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "zoo")
	writeSource(t, src, "dog.py", dogSource)
	outDir := filepath.Join(root, "out")

	g := New(Options{
		Path:      src,
		OutputDir: outDir,
		Manifest:  true,
	}, testLogger(), nil)

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "manifest.yaml"))
	if err != nil {
		t.Fatalf("expected manifest.yaml: %v", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if m.Generated == "" {
		t.Error("manifest missing generated timestamp")
	}
	if len(m.Files) != 1 {
		t.Fatalf("manifest files = %+v", m.Files)
	}
	if m.Files[0].Title != "zoo" || m.Files[0].Format != "md" {
		t.Errorf("manifest entry = %+v", m.Files[0])
	}
}

func TestRunExcludeOverride(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "zoo")
	writeSource(t, src, "dog.py", dogSource)
	writeSource(t, filepath.Join(src, "vendor"), "cat.py", catSource)
	outDir := filepath.Join(root, "out")

	g := New(Options{
		Path:          src,
		OutputDir:     outDir,
		ExtendExclude: []string{"vendor"},
	}, testLogger(), nil)

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "zoo.md"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "class Cat {") {
		t.Errorf("excluded directory leaked into diagram:\n%s", data)
	}
}

func TestRunCacheDistinguishesFileLayout(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "pkg")
	outDir := filepath.Join(root, "out")

	store, err := cache.Open(filepath.Join(root, ".classmap"), testLogger())
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	defer store.Close()

	run := func() (Summary, string) {
		g := New(Options{
			Path:         src,
			OutputDir:    outDir,
			OutputFormat: FormatMmd,
		}, testLogger(), store)
		summary, err := g.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(outDir, "pkg.mmd"))
		if err != nil {
			t.Fatal(err)
		}
		return summary, string(data)
	}

	writeSource(t, src, "a.py", "class Anchor: ...\n")
	writeSource(t, src, "b.py", "from typing import Protocol\nclass Drawable(Protocol):\n    def draw(self) -> None: ...\n")

	first, firstOut := run()
	if first.CacheMisses != 1 {
		t.Errorf("first run summary = %+v", first)
	}
	if !strings.Contains(firstOut, "<<interface>>") {
		t.Errorf("expected interface stereotype on first layout:\n%s", firstOut)
	}

	// Move the import across the file boundary. The concatenated bytes are
	// unchanged, but per-file name resolution is not, so the cache must
	// treat this as a different input.
	writeSource(t, src, "a.py", "class Anchor: ...\nfrom typing import Protocol\n")
	writeSource(t, src, "b.py", "class Drawable(Protocol):\n    def draw(self) -> None: ...\n")

	second, secondOut := run()
	if second.CacheHits != 0 || second.CacheMisses != 1 {
		t.Errorf("second run summary = %+v, want a cache miss", second)
	}
	if strings.Contains(secondOut, "<<interface>>") {
		t.Errorf("stale render served after file layout change:\n%s", secondOut)
	}
	if !strings.Contains(secondOut, "Drawable --|> Protocol") {
		t.Errorf("expected unresolved Protocol base edge:\n%s", secondOut)
	}
}

func TestRunCacheReadFailureDegrades(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "zoo")
	writeSource(t, src, "dog.py", dogSource)

	store, err := cache.Open(filepath.Join(root, ".classmap"), testLogger())
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	store.Close() // every Get and Put now errors

	var logBuf bytes.Buffer
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.WarnLevel,
		Output: &logBuf,
	})

	g := New(Options{
		Path:      src,
		OutputDir: filepath.Join(root, "out"),
	}, logger, store)

	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run should degrade to uncached generation, got: %v", err)
	}
	if summary.Written != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(logBuf.String(), "cache read failed") {
		t.Errorf("expected a cache read warning, got log:\n%s", logBuf.String())
	}
}
