package config

import (
	"errors"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/denysvitali/webtree/pkg/listing"
)

// Defaults shared by the commands and the generated config file.
const (
	DefaultIndexRoot       = "/var/www/html"
	DefaultContentRoot     = "html"
	DefaultHiddenPrefix    = "."
	DefaultEditor          = "nano"
	DefaultDiskWarnPercent = 95.0
)

// Validation errors returned by Config.Validate.
var (
	ErrEmptyIndexRoot      = errors.New("index root must not be empty")
	ErrEmptyContentRoot    = errors.New("page content root must not be empty")
	ErrInvalidDiskWarnLine = errors.New("disk warn percent must be between 0 and 100")
)

// Config represents the application configuration
type Config struct {
	Index     IndexConfig     `mapstructure:"index" yaml:"index"`
	Page      PageConfig      `mapstructure:"page" yaml:"page"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// IndexConfig configures the directory index generator
type IndexConfig struct {
	Root            string   `mapstructure:"root" yaml:"root"`
	Exclude         []string `mapstructure:"exclude" yaml:"exclude"`
	ExtraExclude    []string `mapstructure:"extra_exclude" yaml:"extra_exclude,omitempty"`
	HiddenPrefix    string   `mapstructure:"hidden_prefix" yaml:"hidden_prefix"`
	DiskWarnPercent float64  `mapstructure:"disk_warn_percent" yaml:"disk_warn_percent"`
}

// PageConfig configures the page scaffolder
type PageConfig struct {
	ContentRoot string `mapstructure:"content_root" yaml:"content_root"`
	Editor      string `mapstructure:"editor" yaml:"editor"`
}

// TelemetryConfig contains telemetry configuration
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Index: IndexConfig{
			Root:            DefaultIndexRoot,
			Exclude:         append([]string(nil), listing.DefaultExcludeNames...),
			HiddenPrefix:    DefaultHiddenPrefix,
			DiskWarnPercent: DefaultDiskWarnPercent,
		},
		Page: PageConfig{
			ContentRoot: DefaultContentRoot,
			Editor:      DefaultEditor,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the configuration from viper
func Load() (*Config, error) {
	cfg := &Config{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := postProcess(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	def := Default()

	viper.SetDefault("index.root", def.Index.Root)
	viper.SetDefault("index.exclude", def.Index.Exclude)
	viper.SetDefault("index.hidden_prefix", def.Index.HiddenPrefix)
	viper.SetDefault("index.disk_warn_percent", def.Index.DiskWarnPercent)

	viper.SetDefault("page.content_root", def.Page.ContentRoot)
	viper.SetDefault("page.editor", def.Page.Editor)

	viper.SetDefault("telemetry.enabled", false)

	viper.SetDefault("log.level", def.Log.Level)
	viper.SetDefault("log.json", false)

	// Environment variable mappings
	_ = viper.BindEnv("index.root", "WEBTREE_INDEX_ROOT")
	_ = viper.BindEnv("page.content_root", "WEBTREE_CONTENT_ROOT")
	_ = viper.BindEnv("page.editor", "WEBTREE_EDITOR", "EDITOR")
	_ = viper.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func postProcess(cfg *Config) error {
	if cfg.Index.Root != "" && !filepath.IsAbs(cfg.Index.Root) {
		abs, err := filepath.Abs(cfg.Index.Root)
		if err != nil {
			return err
		}
		cfg.Index.Root = abs
	}

	if cfg.Page.Editor == "" {
		cfg.Page.Editor = DefaultEditor
	}

	return nil
}

// Validate reports the first problem found in the configuration.
func (c *Config) Validate() error {
	if c.Index.Root == "" {
		return ErrEmptyIndexRoot
	}
	if c.Page.ContentRoot == "" {
		return ErrEmptyContentRoot
	}
	if c.Index.DiskWarnPercent < 0 || c.Index.DiskWarnPercent > 100 {
		return ErrInvalidDiskWarnLine
	}
	return nil
}

// Exclusions builds the name filter shared by the walk and the listings.
func (c IndexConfig) Exclusions() listing.Exclusions {
	names := make([]string, 0, len(c.Exclude)+len(c.ExtraExclude))
	names = append(names, c.Exclude...)
	names = append(names, c.ExtraExclude...)
	return listing.NewExclusions(names, c.HiddenPrefix)
}
