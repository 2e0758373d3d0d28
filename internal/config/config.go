package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"taskman/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir" json:"data_dir"`
	ExportDir string `toml:"export_dir" json:"export_dir"`
}

// Tasks contains defaults applied when creating tasks.
type Tasks struct {
	DefaultPriority int `toml:"default_priority" json:"default_priority"`
}

// Export contains configuration for task exports.
type Export struct {
	Format   string `toml:"format" json:"format"`
	Filename string `toml:"filename" json:"filename"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" json:"format"`
	Level  string `toml:"level" json:"level"`
	// ToFile additionally appends log lines to <data_dir>/taskman.log.
	ToFile bool `toml:"to_file" json:"to_file"`
}

// Config encapsulates all configuration values for taskman.
type Config struct {
	Paths   Paths   `toml:"paths" json:"paths"`
	Tasks   Tasks   `toml:"tasks" json:"tasks"`
	Export  Export  `toml:"export" json:"export"`
	Logging Logging `toml:"logging" json:"logging"`
}

// ExportFormats lists the accepted export.format values.
var ExportFormats = []string{"csv", "json", "pdf"}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data directory. The export directory is
// created lazily by exporters.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.DataDir, err)
	}
	return nil
}

// DatabasePath is the SQLite file holding all tasks.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "tasks.db")
}

// LockPath is the file locked for the lifetime of an open store.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "taskman.lock")
}

// LogPath is the optional log file inside the data directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.DataDir, "taskman.log")
}

// DefaultExportPath returns <export_dir>/<filename>.<format>.
func (c *Config) DefaultExportPath(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = c.Export.Format
	}
	return filepath.Join(c.Paths.ExportDir, c.Export.Filename+"."+format)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := fileutil.WriteBytesAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
