// Package config loads tool configuration with layered precedence:
// built-in defaults, then a pyproject.toml [tool.classmap] table, then
// .classmap/config.json, then CLASSMAP_* environment variables. Command-line
// flags are applied on top by the CLI layer.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config represents the complete configuration
type Config struct {
	OutputDir     string   `json:"outputDir" mapstructure:"outputDir"`
	OutputFormat  string   `json:"outputFormat" mapstructure:"outputFormat"`
	MultipleFiles bool     `json:"multipleFiles" mapstructure:"multipleFiles"`
	Direction     string   `json:"direction" mapstructure:"direction"`
	NoTitle       bool     `json:"noTitle" mapstructure:"noTitle"`
	Exclude       []string `json:"exclude" mapstructure:"exclude"`
	ExtendExclude []string `json:"extendExclude" mapstructure:"extendExclude"`
	Manifest      bool     `json:"manifest" mapstructure:"manifest"`

	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// CacheConfig contains render cache configuration
type CacheConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir" mapstructure:"dir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OutputDir:    "./output",
		OutputFormat: "md",
		Direction:    "TB",
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".classmap",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// pyprojectFile mirrors the slice of pyproject.toml this tool reads.
type pyprojectFile struct {
	Tool struct {
		Classmap map[string]interface{} `toml:"classmap"`
	} `toml:"tool"`
}

// LoadConfig loads configuration for a project root, applying the layering
// described in the package comment. A missing file at any layer is not an
// error.
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("outputDir", defaults.OutputDir)
	v.SetDefault("outputFormat", defaults.OutputFormat)
	v.SetDefault("multipleFiles", defaults.MultipleFiles)
	v.SetDefault("direction", defaults.Direction)
	v.SetDefault("noTitle", defaults.NoTitle)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	if err := mergePyproject(v, projectRoot); err != nil {
		return nil, err
	}

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".classmap"))
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("CLASSMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergePyproject folds a [tool.classmap] table into the viper instance.
func mergePyproject(v *viper.Viper, projectRoot string) error {
	data, err := os.ReadFile(filepath.Join(projectRoot, "pyproject.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return err
	}
	if len(file.Tool.Classmap) == 0 {
		return nil
	}
	return v.MergeConfigMap(file.Tool.Classmap)
}

// Save writes the configuration to .classmap/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, ".classmap")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "md", "mmd":
	default:
		return &ConfigError{Field: "outputFormat", Message: "must be md or mmd"}
	}
	switch strings.ToUpper(c.Direction) {
	case "TB", "BT", "LR", "RL":
	default:
		return &ConfigError{Field: "direction", Message: "must be TB, BT, LR, or RL"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
