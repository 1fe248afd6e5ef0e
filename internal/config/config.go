package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. IMAGEINFO_SCAN_WORKERS.
const EnvPrefix = "IMAGEINFO"

// Exif summary formats
const (
	FormatText = "txt"
	FormatYAML = "yaml"
)

// Config represents the application configuration
type Config struct {
	Debug bool       `mapstructure:"debug"`
	Scan  ScanConfig `mapstructure:"scan"`
	Exif  ExifConfig `mapstructure:"exif"`
}

// ScanConfig holds extension scan settings
type ScanConfig struct {
	Workers int `mapstructure:"workers"` // walker goroutines per root, 0 = walker default

	// SkipLastRoot reproduces the historical behavior where the last root
	// (desktop) is reported but never walked.
	SkipLastRoot bool `mapstructure:"skip_last_root"`
}

// ExifConfig holds Exif summary output settings
type ExifConfig struct {
	OutputDir string `mapstructure:"output_dir"` // empty = downloads directory
	Format    string `mapstructure:"format"`     // txt, yaml
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "imageinfo", "config.yaml")
}

// Load reads configuration from defaults, an optional config file and the
// environment. An empty path means DefaultPath; a missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("debug", false)
	v.SetDefault("scan.workers", 0)
	v.SetDefault("scan.skip_last_root", false)
	v.SetDefault("exif.output_dir", "")
	v.SetDefault("exif.format", FormatText)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that can't be expressed as defaults
func (c *Config) Validate() error {
	switch c.Exif.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("invalid exif format %q (want %s or %s)", c.Exif.Format, FormatText, FormatYAML)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("invalid scan workers %d", c.Scan.Workers)
	}
	return nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Exif: ExifConfig{Format: FormatText},
	}
}
