package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// FromEnv overrides cfg fields from INFERD_* environment variables.
// Key lists are comma-separated. Invalid numeric values are reported as
// errors rather than silently ignored.
func FromEnv(cfg *Config) error {
	if v := os.Getenv("INFERD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("INFERD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("INFERD_API_KEYS"); v != "" {
		cfg.APIKeys = SplitCSV(v)
	}
	if v := os.Getenv("INFERD_ADMIN_API_KEYS"); v != "" {
		cfg.AdminAPIKeys = SplitCSV(v)
	}
	if v := os.Getenv("INFERD_MODEL_PATH"); v != "" {
		cfg.ModelPath = v
	}
	if v := os.Getenv("INFERD_MODEL_NAME"); v != "" {
		cfg.ModelName = v
	}
	for _, iv := range []struct {
		env string
		dst *int
	}{
		{"INFERD_N_CTX", &cfg.CtxSize},
		{"INFERD_N_BATCH", &cfg.BatchSize},
		{"INFERD_N_THREADS", &cfg.Threads},
		{"INFERD_MAX_QUEUE_DEPTH", &cfg.MaxQueueDepth},
	} {
		if v := os.Getenv(iv.env); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", iv.env, err)
			}
			*iv.dst = n
		}
	}
	if v := os.Getenv("INFERD_N_GPU_LAYERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("INFERD_N_GPU_LAYERS: %w", err)
		}
		cfg.GPULayers = &n
	}
	for _, bv := range []struct {
		env string
		dst **bool
	}{
		{"INFERD_USE_MMAP", &cfg.UseMMap},
		{"INFERD_USE_MLOCK", &cfg.UseMLock},
	} {
		if v := os.Getenv(bv.env); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", bv.env, err)
			}
			*bv.dst = &b
		}
	}
	if v := os.Getenv("INFERD_REQUEST_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("INFERD_REQUEST_TIMEOUT_SECONDS: %w", err)
		}
		cfg.RequestTimeoutSeconds = n
	}
	return nil
}

// SplitCSV splits a comma-separated value into trimmed non-empty parts.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
