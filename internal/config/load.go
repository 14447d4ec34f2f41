package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
	"go.uber.org/zap"
)

const (
	EnvPort       = "PORT"
	EnvWebhookURL = "PRIMEADAPT_WEBHOOK_URL"
	EnvDebug      = "PRIMEADAPT_DEBUG"
)

func splitExt(f string) (string, string) {
	ext := filepath.Ext(f)
	return strings.TrimSuffix(f, ext), strings.TrimPrefix(ext, ".")
}

// Load builds the configuration from defaults, then <name>.<ext>, then
// <name>.local.<ext>, then the environment. An empty path skips the files.
func Load(path string, logger *zap.Logger) (Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := Defaults()

	if path != "" {
		fromFiles, err := readFiles(path, logger)
		if err != nil {
			return cfg, err
		}
		if err := mergo.Merge(&cfg, fromFiles, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFiles(name string, logger *zap.Logger) (Config, error) {
	var out Config
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
		found = true
	}

	prefix, ext := splitExt(filepath.Base(name))
	localPath := filepath.Join(filepath.Dir(name), fmt.Sprintf("%s.local.%s", prefix, ext))
	local, err := os.ReadFile(localPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return out, err
	}
	if len(local) > 0 {
		var override Config
		if err := json5.Unmarshal(local, &override); err != nil {
			return out, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, localPath, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		logger.Info("merging config with local overrides", zap.String("local", localPath))
		found = true
	}

	if !found {
		return out, fmt.Errorf("config %s: %w", name, fs.ErrNotExist)
	}
	return out, nil
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func ApplyEnv(cfg *Config) error {
	if port := os.Getenv(EnvPort); port != "" {
		cfg.Listen = ":" + port
	}
	if hook := os.Getenv(EnvWebhookURL); hook != "" {
		cfg.WebhookURL = hook
	}
	if debug := os.Getenv(EnvDebug); debug != "" {
		v, err := strconv.ParseBool(debug)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvDebug, debug)
		}
		cfg.Debug = v
	}
	return nil
}
