package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "greenhouse.toml"

	// XDGConfigSubdir is the subdirectory under XDG_CONFIG_HOME for greenhouse.
	XDGConfigSubdir = "greenhouse"
)

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration. An explicit path is used as given and must
// exist. Otherwise the first existing file among searchPaths wins, and when
// none exists and createDefault is set, the defaults are written to the first
// writable search path.
//
// Returns the configuration and the path it came from, which is empty when
// the defaults could not be written anywhere.
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	if explicitPath != "" {
		return loadAt(explicitPath)
	}

	paths := searchPaths()
	for _, path := range paths {
		if fileExists(path) {
			return loadAt(path)
		}
	}

	if !createDefault {
		return nil, "", fmt.Errorf("no configuration file found; searched: %s", strings.Join(paths, ", "))
	}

	cfg := Default()
	for _, path := range paths {
		if err := Save(cfg, path); err == nil {
			return cfg, path, nil
		}
	}
	return cfg, "", nil
}

// searchPaths lists the config locations in order of precedence: the XDG
// config directory, when one can be determined, then the working directory.
func searchPaths() []string {
	var paths []string
	if xdg := xdgConfigPath(); xdg != "" {
		paths = append(paths, xdg)
	}
	return append(paths, filepath.Join(".", DefaultConfigFileName))
}

func loadAt(path string) (*Config, string, error) {
	cfg, err := loadFromFile(path)
	if err != nil {
		return nil, "", &LoadError{Path: path, Err: err}
	}
	return cfg, path, nil
}

// loadFromFile decodes a TOML file over the defaults, so omitted keys keep
// their default values, and validates the result.
func loadFromFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultHeader opens every generated config file.
const defaultHeader = `# Greenhouse Configuration File
#
# This file was auto-generated. Edit as needed.
# Game rules (day length, capacities, ponds, varieties) are not configurable.

`

// Save writes a configuration to a TOML file, creating its directory.
func Save(cfg *Config, path string) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(defaultHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0640); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// xdgConfigPath returns the config file path under $XDG_CONFIG_HOME, falling
// back to ~/.config. It is empty when neither can be determined.
func xdgConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, XDGConfigSubdir, DefaultConfigFileName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0750)
}

// EnsureLogDir creates the directory of the configured log file and returns
// its path, or "" when file logging is disabled.
func EnsureLogDir(cfg *Config) (string, error) {
	if cfg.Logging.File == "" {
		return "", nil
	}
	if err := ensureDir(cfg.Logging.File); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return cfg.Logging.File, nil
}
