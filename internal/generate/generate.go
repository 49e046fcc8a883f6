// Package generate drives end-to-end diagram generation: file discovery,
// parsing, model building, rendering, caching, and output writing.
package generate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"classmap/internal/analyze"
	"classmap/internal/cache"
	"classmap/internal/diagram"
	"classmap/internal/errors"
	"classmap/internal/logging"
	"classmap/internal/mermaid"
	"classmap/internal/paths"
	"classmap/internal/scan"
)

// Format selects the output file format.
type Format string

const (
	// FormatMd wraps the diagram in a fenced ```mermaid Markdown block
	FormatMd Format = "md"
	// FormatMmd emits raw Mermaid text
	FormatMmd Format = "mmd"
)

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatMmd {
		return "mmd"
	}
	return "md"
}

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatMd:
		return FormatMd, nil
	case FormatMmd:
		return FormatMmd, nil
	}
	return "", fmt.Errorf("invalid output format: %s (expected md or mmd)", s)
}

// Options configures one generation run.
type Options struct {
	// Path is the input file or directory; "-" reads source from Stdin.
	Path          string
	MultipleFiles bool
	OutputDir     string
	OutputFormat  Format
	// Output, when set, writes the single rendered diagram to this path
	// ("-" for Stdout) instead of OutputDir.
	Output        string
	Direction     diagram.Direction
	NoTitle       bool
	Manifest      bool
	Exclude       []string
	ExtendExclude []string

	// Stdin and Stdout are overridable for tests.
	Stdin  io.Reader
	Stdout io.Writer
}

// OutputEntry describes one written diagram file.
type OutputEntry struct {
	Title  string `yaml:"title"`
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Summary reports what a run produced.
type Summary struct {
	Diagrams    int
	Written     int
	Skipped     int
	CacheHits   int
	CacheMisses int
	Outputs     []OutputEntry
}

// Generator runs the pipeline. Store is optional; a nil store disables
// caching.
type Generator struct {
	opts   Options
	logger *logging.Logger
	store  *cache.Store
}

func New(opts Options, logger *logging.Logger, store *cache.Store) *Generator {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = FormatMd
	}
	return &Generator{opts: opts, logger: logger, store: store}
}

// rendered pairs a diagram title with its raw Mermaid text. Empty diagrams
// carry an empty Text.
type rendered struct {
	Title string
	Text  string
}

// Run generates, renders, and writes all diagrams for the configured input.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	diagrams, err := g.renderAll(ctx, &summary)
	if err != nil {
		return summary, err
	}
	summary.Diagrams = len(diagrams)

	if g.opts.Output != "" {
		if len(diagrams) > 1 {
			return summary, errors.New(errors.ConfigInvalid,
				"--output is not compatible with --multiple-files; use --output-dir instead", nil)
		}
		var text string
		if len(diagrams) == 1 {
			text = diagrams[0].Text
		}
		content := g.formatOutput(text)
		if err := g.writeSingle(content); err != nil {
			return summary, err
		}
		summary.Written = 1
		return summary, nil
	}

	for _, d := range diagrams {
		if d.Text == "" {
			g.logger.Info("no classes found", map[string]interface{}{"title": d.Title})
			summary.Skipped++
			continue
		}
		outPath := filepath.Join(g.opts.OutputDir,
			filepath.FromSlash(d.Title)+"."+g.opts.OutputFormat.Extension())
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return summary, errors.New(errors.OutputFailed, "failed to create output directory", err)
		}
		if err := os.WriteFile(outPath, []byte(g.formatOutput(d.Text)), 0o644); err != nil {
			return summary, errors.New(errors.OutputFailed, "failed to write diagram", err)
		}
		g.logger.Info("diagram written", map[string]interface{}{"path": outPath})
		summary.Written++
		summary.Outputs = append(summary.Outputs, OutputEntry{
			Title:  d.Title,
			Path:   paths.Normalize(outPath),
			Format: string(g.opts.OutputFormat),
		})
	}

	if g.opts.Manifest {
		if err := g.writeManifest(summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// renderAll produces the raw Mermaid text for every diagram the input
// yields, consulting the cache when enabled.
func (g *Generator) renderAll(ctx context.Context, summary *Summary) ([]rendered, error) {
	if g.opts.Path == "-" {
		if g.opts.MultipleFiles {
			return nil, errors.New(errors.ConfigInvalid,
				"--multiple-files is not compatible with stdin input", nil)
		}
		source, err := io.ReadAll(g.opts.Stdin)
		if err != nil {
			return nil, errors.New(errors.InternalError, "failed to read stdin", err)
		}
		text, err := g.renderUnit(ctx, [][]byte{source}, "")
		if err != nil {
			return nil, err
		}
		return []rendered{{Text: text}}, nil
	}

	info, err := os.Stat(g.opts.Path)
	if err != nil {
		return nil, errors.New(errors.NoSources, fmt.Sprintf("%s does not exist", g.opts.Path), err)
	}

	if !info.IsDir() {
		title := ""
		if !g.opts.NoTitle {
			title = paths.Normalize(g.opts.Path)
		}
		text, err := g.renderFiles(ctx, []string{g.opts.Path}, title, summary)
		if err != nil {
			return nil, err
		}
		return []rendered{{Title: title, Text: text}}, nil
	}

	settings := scan.NewSettings(g.opts.Path)
	if g.opts.Exclude != nil {
		settings.Exclude = g.opts.Exclude
	}
	settings.ExtendExclude = g.opts.ExtendExclude

	files, err := scan.PythonFiles(settings)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to walk input directory", err)
	}
	if len(files) == 0 {
		return nil, errors.New(errors.NoSources,
			fmt.Sprintf("no Python files found under %s", g.opts.Path), nil)
	}

	if g.opts.MultipleFiles {
		diagrams := make([]rendered, 0, len(files))
		for _, file := range files {
			title := ""
			if !g.opts.NoTitle {
				if canonical, err := paths.Canonicalize(file, g.opts.Path); err == nil {
					title = canonical
				} else {
					title = paths.RelativeTo(file, g.opts.Path)
				}
			}
			text, err := g.renderFiles(ctx, []string{file}, title, summary)
			if err != nil {
				return nil, err
			}
			diagrams = append(diagrams, rendered{Title: title, Text: text})
		}
		return diagrams, nil
	}

	title := ""
	if !g.opts.NoTitle {
		title = paths.RootBaseName(g.opts.Path)
	}
	text, err := g.renderFiles(ctx, files, title, summary)
	if err != nil {
		return nil, err
	}
	return []rendered{{Title: title, Text: text}}, nil
}

// renderFiles renders one diagram from a set of source files, going through
// the cache when a store is attached.
func (g *Generator) renderFiles(ctx context.Context, files []string, title string, summary *Summary) (string, error) {
	sources := make([][]byte, 0, len(files))
	// The key digest concatenates per-file hashes, not raw bytes, so two
	// runs that split the same bytes across files differently never share
	// a cache entry.
	var digest []byte
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			g.logger.Warn("skipping unreadable file", map[string]interface{}{
				"path": file, "error": err.Error(),
			})
			continue
		}
		sources = append(sources, source)
		sum := sha256.Sum256(source)
		digest = append(digest, sum[:]...)
	}

	if g.store == nil {
		return g.renderUnit(ctx, sources, title)
	}

	key := cache.Key(digest, title, string(g.opts.Direction))
	text, ok, err := g.store.Get(key)
	if err != nil {
		g.logger.Warn("cache read failed, regenerating", map[string]interface{}{
			"error": err.Error(),
		})
	} else if ok {
		summary.CacheHits++
		return text, nil
	}
	summary.CacheMisses++

	text, err = g.renderUnit(ctx, sources, title)
	if err != nil {
		return "", err
	}
	if text != "" {
		if err := g.store.Put(key, text); err != nil {
			g.logger.Warn("failed to cache render", map[string]interface{}{"error": err.Error()})
		}
	}
	return text, nil
}

// renderUnit builds and renders one diagram from already-read sources.
// Unparseable sources are skipped so a broken file degrades to a partial
// diagram.
func (g *Generator) renderUnit(ctx context.Context, sources [][]byte, title string) (string, error) {
	builder := analyze.NewBuilder(g.opts.Direction)
	builder.SetTitle(title)

	for _, source := range sources {
		if err := builder.AddSource(ctx, source); err != nil {
			perr := errors.New(errors.ParseFailed, "failed to parse source", err)
			g.logger.Warn(perr.Error(), map[string]interface{}{"code": string(errors.ParseFailed)})
		}
	}

	text, ok := mermaid.NewRenderer().Render(builder.Diagram())
	if !ok {
		return "", nil
	}
	return text, nil
}

// formatOutput applies the configured output format to raw Mermaid text.
func (g *Generator) formatOutput(raw string) string {
	raw = strings.TrimRight(raw, " \t\n")
	if g.opts.OutputFormat == FormatMd {
		return "```mermaid\n" + raw + "\n```\n"
	}
	return raw + "\n"
}

func (g *Generator) writeSingle(content string) error {
	if g.opts.Output == "-" {
		if _, err := io.WriteString(g.opts.Stdout, content); err != nil {
			return errors.New(errors.OutputFailed, "failed to write stdout", err)
		}
		return nil
	}
	if err := os.WriteFile(g.opts.Output, []byte(content), 0o644); err != nil {
		return errors.New(errors.OutputFailed,
			fmt.Sprintf("failed to write %s", g.opts.Output), err)
	}
	return nil
}

// manifest is the YAML summary written next to the generated diagrams.
type manifest struct {
	Generated string        `yaml:"generated"`
	RunID     string        `yaml:"runId,omitempty"`
	Files     []OutputEntry `yaml:"files"`
}

func (g *Generator) writeManifest(summary Summary) error {
	m := manifest{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Files:     summary.Outputs,
	}
	if g.store != nil {
		id, err := g.store.RecordRun(summary.Diagrams, summary.CacheHits, summary.CacheMisses)
		if err == nil {
			m.RunID = id
		}
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return errors.New(errors.InternalError, "failed to marshal manifest", err)
	}
	if err := os.MkdirAll(g.opts.OutputDir, 0o755); err != nil {
		return errors.New(errors.OutputFailed, "failed to create output directory", err)
	}
	path := filepath.Join(g.opts.OutputDir, "manifest.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.OutputFailed, "failed to write manifest", err)
	}
	return nil
}
