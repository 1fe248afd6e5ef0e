package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
debug: true
scan:
  workers: 2
  skip_last_root: true
exif:
  output_dir: /tmp/exif
  format: yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 2, cfg.Scan.Workers)
	assert.True(t, cfg.Scan.SkipLastRoot)
	assert.Equal(t, "/tmp/exif", cfg.Exif.OutputDir)
	assert.Equal(t, FormatYAML, cfg.Exif.Format)
}

func TestLoadDefaultsWithPartialFile(t *testing.T) {
	path := writeConfig(t, "debug: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Scan.Workers)
	assert.False(t, cfg.Scan.SkipLastRoot)
	assert.Equal(t, FormatText, cfg.Exif.Format)
	assert.Empty(t, cfg.Exif.OutputDir)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "scan:\n  workers: 2\n")
	t.Setenv("IMAGEINFO_SCAN_WORKERS", "5")
	t.Setenv("IMAGEINFO_SCAN_SKIP_LAST_ROOT", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Scan.Workers)
	assert.True(t, cfg.Scan.SkipLastRoot)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Text format", Config{Exif: ExifConfig{Format: FormatText}}, false},
		{"YAML format", Config{Exif: ExifConfig{Format: FormatYAML}}, false},
		{"Unknown format", Config{Exif: ExifConfig{Format: "xml"}}, true},
		{"Empty format", Config{}, true},
		{"Negative workers", Config{Scan: ScanConfig{Workers: -1}, Exif: ExifConfig{Format: FormatText}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
