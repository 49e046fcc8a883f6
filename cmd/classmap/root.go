package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"classmap/internal/cache"
	"classmap/internal/config"
	"classmap/internal/diagram"
	"classmap/internal/errors"
	"classmap/internal/generate"
	"classmap/internal/logging"
	"classmap/internal/python"
	"classmap/internal/version"
)

var (
	multipleFilesFlag bool
	outputDirFlag     string
	outputFormatFlag  string
	outputFlag        string
	excludeFlag       []string
	extendExcludeFlag []string
	directionFlag     string
	noTitleFlag       bool
	manifestFlag      bool
	noCacheFlag       bool
	logFormatFlag     string
	logLevelFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "classmap [path]",
	Short: "Generate Mermaid class diagrams from Python source",
	Long: `classmap parses Python source code and renders its class structure as
Mermaid classDiagram text: classes with members and stereotypes, inheritance
and interface implementation arrows, and composition edges inferred from type
annotations.

Examples:
  classmap ./src
  classmap ./src --multiple-files --output-format mmd
  classmap models.py --output -
  cat models.py | classmap - --output -
  classmap ./src --extend-exclude "migrations" --direction LR`,
	Args:    cobra.MaximumNArgs(1),
	Version: version.Version,
	RunE:    runGenerate,
}

func init() {
	rootCmd.SetVersionTemplate("classmap version {{.Version}}\n")

	rootCmd.Flags().BoolVarP(&multipleFilesFlag, "multiple-files", "m", false, "Generate one diagram per file (directories only)")
	rootCmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for generated diagrams (default ./output)")
	rootCmd.Flags().StringVar(&outputFormatFlag, "output-format", "", "Output format (md, mmd)")
	rootCmd.Flags().StringVar(&outputFlag, "output", "", "Write the single diagram to this path ('-' for stdout)")
	rootCmd.Flags().StringSliceVar(&excludeFlag, "exclude", nil, "Replace the default exclude patterns (can be repeated)")
	rootCmd.Flags().StringSliceVar(&extendExcludeFlag, "extend-exclude", nil, "Add exclude patterns (can be repeated)")
	rootCmd.Flags().StringVar(&directionFlag, "direction", "", "Diagram direction (TB, BT, LR, RL)")
	rootCmd.Flags().BoolVar(&noTitleFlag, "no-title", false, "Omit the diagram title header")
	rootCmd.Flags().BoolVar(&manifestFlag, "manifest", false, "Write a YAML manifest of generated files")
	rootCmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the render cache")

	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (human, json)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig resolves the layered configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("multiple-files") {
		cfg.MultipleFiles = multipleFilesFlag
	}
	if outputDirFlag != "" {
		cfg.OutputDir = outputDirFlag
	}
	if outputFormatFlag != "" {
		cfg.OutputFormat = outputFormatFlag
	}
	if excludeFlag != nil {
		cfg.Exclude = excludeFlag
	}
	if extendExcludeFlag != nil {
		cfg.ExtendExclude = append(cfg.ExtendExclude, extendExcludeFlag...)
	}
	if directionFlag != "" {
		cfg.Direction = directionFlag
	}
	if flags.Changed("no-title") {
		cfg.NoTitle = noTitleFlag
	}
	if flags.Changed("manifest") {
		cfg.Manifest = manifestFlag
	}
	if noCacheFlag {
		cfg.Cache.Enabled = false
	}
	if logFormatFlag != "" {
		cfg.Logging.Format = logFormatFlag
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLoggerFromConfig(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLoggerFromConfig(cfg)

	if !python.IsAvailable() {
		return errors.New(errors.ParserUnavailable,
			"this build has no Python parser; rebuild with cgo enabled", nil)
	}

	format, err := generate.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	direction, err := diagram.ParseDirection(cfg.Direction)
	if err != nil {
		return err
	}

	var store *cache.Store
	if cfg.Cache.Enabled {
		store, err = cache.Open(cfg.Cache.Dir, logger)
		if err != nil {
			cerr := errors.New(errors.CacheUnavailable, "render cache unavailable, continuing without it", err)
			logger.Warn(cerr.Error(), map[string]interface{}{
				"code": string(errors.CacheUnavailable),
			})
			writeSuggestedFixes(os.Stderr, cerr)
			store = nil
		} else {
			defer store.Close()
		}
	}

	// Reading from stdin implies stdout unless an output path is given.
	output := outputFlag
	if path == "-" && output == "" {
		output = "-"
	}

	g := generate.New(generate.Options{
		Path:          path,
		MultipleFiles: cfg.MultipleFiles,
		OutputDir:     cfg.OutputDir,
		OutputFormat:  format,
		Output:        output,
		Direction:     direction,
		NoTitle:       cfg.NoTitle,
		Manifest:      cfg.Manifest,
		Exclude:       cfg.Exclude,
		ExtendExclude: cfg.ExtendExclude,
	}, logger, store)

	summary, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Fprintf(os.Stderr, "Files written: %d\n", summary.Written)
	}
	return nil
}

// writeSuggestedFixes prints the fix commands registered for a coded error.
// Plain errors print nothing.
func writeSuggestedFixes(w io.Writer, err error) {
	var coded *errors.Error
	if !stderrors.As(err, &coded) {
		return
	}
	for _, fix := range errors.GetSuggestedFixes(coded.Code) {
		fmt.Fprintf(w, "Suggested fix: %s  (%s)\n", fix.Command, fix.Description)
	}
}
