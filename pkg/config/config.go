/*
Copyright © 2026 Scriptdex Authors
*/

// Package config loads indexer configuration from scriptdex.yaml and
// SCRIPTDEX_* environment variables, with working defaults when neither
// is present.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Collision policies for two scripts declaring the same @name.
const (
	CollisionsReplace = "replace" // later file silently wins, warning logged
	CollisionsError   = "error"   // later file rejected with a warning string
)

// Config holds all configuration for scriptdex.
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Output OutputConfig `mapstructure:"output"`
}

// ScanConfig controls discovery and parsing.
type ScanConfig struct {
	// Root is the directory scanned for scripts.
	Root string `mapstructure:"root"`
	// Extensions a file must carry to be eligible.
	Extensions []string `mapstructure:"extensions"`
	// CommentPrefixes are the line-comment markers the directive grammar
	// accepts.
	CommentPrefixes []string `mapstructure:"comment_prefixes"`
	// Include/Exclude are doublestar patterns applied to root-relative
	// paths after the extension rule.
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
	// Concurrency bounds parallel file parsing; 1 means sequential.
	Concurrency int `mapstructure:"concurrency"`
	// Collisions is one of CollisionsReplace or CollisionsError.
	Collisions string `mapstructure:"collisions"`
	// UseIgnoreFiles enables the gitignore/.scriptdexignore layers.
	UseIgnoreFiles bool `mapstructure:"use_ignore_files"`
}

// OutputConfig controls the manifest artifact and the operator summary.
type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"` // concise, markdown, or json
}

var defaultConfig = Config{
	Scan: ScanConfig{
		Root:            "scripts",
		Extensions:      []string{".sh"},
		CommentPrefixes: []string{"#", "//"},
		Concurrency:     1,
		Collisions:      CollisionsReplace,
		UseIgnoreFiles:  true,
	},
	Output: OutputConfig{
		Path:   "scripts/manifest.json",
		Format: "concise",
	},
}

// Default returns a copy of the built-in configuration.
func Default() Config {
	return defaultConfig
}

// Load reads configuration from scriptdex.yaml (current directory, then
// $HOME/.scriptdex) and the environment. A missing config file is fine;
// defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("scan.root", defaultConfig.Scan.Root)
	v.SetDefault("scan.extensions", defaultConfig.Scan.Extensions)
	v.SetDefault("scan.comment_prefixes", defaultConfig.Scan.CommentPrefixes)
	v.SetDefault("scan.include", defaultConfig.Scan.Include)
	v.SetDefault("scan.exclude", defaultConfig.Scan.Exclude)
	v.SetDefault("scan.concurrency", defaultConfig.Scan.Concurrency)
	v.SetDefault("scan.collisions", defaultConfig.Scan.Collisions)
	v.SetDefault("scan.use_ignore_files", defaultConfig.Scan.UseIgnoreFiles)
	v.SetDefault("output.path", defaultConfig.Output.Path)
	v.SetDefault("output.format", defaultConfig.Output.Format)

	v.SetConfigName("scriptdex")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.scriptdex")

	v.SetEnvPrefix("SCRIPTDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; keep defaults when absent.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the indexer cannot act on.
func (c *Config) Validate() error {
	if c.Scan.Root == "" {
		return fmt.Errorf("scan.root must not be empty")
	}
	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions must list at least one extension")
	}
	if len(c.Scan.CommentPrefixes) == 0 {
		return fmt.Errorf("scan.comment_prefixes must list at least one prefix")
	}
	switch c.Scan.Collisions {
	case CollisionsReplace, CollisionsError:
	default:
		return fmt.Errorf("scan.collisions must be %q or %q, got %q",
			CollisionsReplace, CollisionsError, c.Scan.Collisions)
	}
	switch c.Output.Format {
	case "concise", "markdown", "json":
	default:
		return fmt.Errorf("output.format must be concise, markdown, or json, got %q", c.Output.Format)
	}
	if c.Scan.Concurrency < 0 {
		return fmt.Errorf("scan.concurrency must not be negative")
	}
	return nil
}
