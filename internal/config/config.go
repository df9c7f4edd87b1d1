package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DataDir     string `yaml:"data_dir" env:"STUFF_DATA_DIR"`
	Backend     string `yaml:"backend" env:"STUFF_BACKEND" env-default:"json"` // "json" or "sqlite"
	DefaultView string `yaml:"default_view" env:"STUFF_DEFAULT_VIEW" env-default:"inbox"`
	Development bool   `yaml:"development" env:"STUFF_DEV" env-default:"false"`
	LogFile     string `yaml:"log_file" env:"STUFF_LOG_FILE"`
}

// DefaultPath is where the config file lives unless told otherwise.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "stuff", "config.yml"), nil
}

// Load reads the yaml config when present and falls back to env variables
// and defaults when it is not.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return cfg, err
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, err
		}
	}
	if cfg.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, err
		}
		cfg.DataDir = filepath.Join(dir, "stuff")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "stuff.log")
	}
	return cfg, nil
}
