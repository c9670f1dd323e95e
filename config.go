package iconpress

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls one conversion run. The zero value is not usable; start
// from DefaultConfig or LoadConfig.
type Config struct {
	// IconsRoot overrides the executable-relative icons root discovery.
	IconsRoot string `yaml:"icons_root"`
	// Headless disables the blocking operator prompt on validation
	// failures; pauses are auto-dismissed and the folder reported failed.
	Headless bool `yaml:"headless"`
	// Quality is the JPEG quality setting of the lossy encode.
	Quality int `yaml:"jpeg_quality"`
	// Sizes overrides the target edge length matrix.
	Sizes []int `yaml:"sizes"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in settings matching the fixed variant
// matrix.
func DefaultConfig() *Config {
	return &Config{
		Quality:  DefaultJPEGQuality,
		Sizes:    DefaultSizes,
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults. An
// empty path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "unable to parse config file %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Quality < 1 || c.Quality > 100 {
		return errors.Errorf("jpeg_quality must be between 1 and 100, got %d", c.Quality)
	}
	if len(c.Sizes) == 0 {
		return errors.New("sizes must not be empty")
	}
	for _, s := range c.Sizes {
		if s <= 0 {
			return errors.Errorf("sizes must be positive, got %d", s)
		}
	}
	return nil
}

// FindIconsRoot resolves the icons root relative to the running executable:
// the parent directory's icons/ folder, then one next to the executable,
// then an immediate subdirectory literally named icons.
func FindIconsRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", &SetupError{Reason: "unable to resolve the executable path", Err: err}
	}
	return findIconsRootFrom(filepath.Dir(exe))
}

func findIconsRootFrom(execDir string) (string, error) {
	candidates := []string{
		filepath.Join(filepath.Dir(execDir), "icons"),
		filepath.Join(execDir, "icons"),
	}
	for _, dir := range candidates {
		if isDir(dir) {
			return dir, nil
		}
	}

	entries, err := os.ReadDir(execDir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() && entry.Name() == "icons" {
				return filepath.Join(execDir, entry.Name()), nil
			}
		}
	}

	return "", &SetupError{
		Reason: fmt.Sprintf("could not find an icons folder near %s", execDir),
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
