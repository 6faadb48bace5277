package config

import (
	"fmt"
	"time"

	"inferd/internal/common/fsutil"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultAddr           = ":1133"
	DefaultModelName      = "llama-3-8b"
	DefaultCtxSize        = 4096
	DefaultBatchSize      = 512
	DefaultGPULayers      = -1 // all layers
	DefaultThreads        = 8
	DefaultRopeFreqBase   = 10000.0
	DefaultRopeFreqScale  = 1.0
	DefaultMaxTokens      = 500
	DefaultMaxBodyBytes   = 1 << 20
	DefaultRequestTimeout = 120 * time.Second
	DefaultMaxQueueDepth  = 32
	DefaultMaxWait        = 30 * time.Second
)

// Config holds runtime parameters for the service. It is populated from a
// config file, then overridden from the environment. Zero values mean
// "unspecified" and are replaced by defaults in ApplyDefaults.
type Config struct {
	// Server
	Addr     string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// Authentication
	APIKeys      []string `json:"api_keys" yaml:"api_keys" toml:"api_keys"`
	AdminAPIKeys []string `json:"admin_api_keys" yaml:"admin_api_keys" toml:"admin_api_keys"`

	// Model
	ModelPath string `json:"model_path" yaml:"model_path" toml:"model_path"`
	ModelName string `json:"model_name" yaml:"model_name" toml:"model_name"`

	// Engine tuning
	CtxSize       int     `json:"n_ctx" yaml:"n_ctx" toml:"n_ctx"`
	BatchSize     int     `json:"n_batch" yaml:"n_batch" toml:"n_batch"`
	GPULayers     *int    `json:"n_gpu_layers" yaml:"n_gpu_layers" toml:"n_gpu_layers"`
	Threads       int     `json:"n_threads" yaml:"n_threads" toml:"n_threads"`
	UseMMap       *bool   `json:"use_mmap" yaml:"use_mmap" toml:"use_mmap"`
	UseMLock      *bool   `json:"use_mlock" yaml:"use_mlock" toml:"use_mlock"`
	RopeFreqBase  float64 `json:"rope_freq_base" yaml:"rope_freq_base" toml:"rope_freq_base"`
	RopeFreqScale float64 `json:"rope_freq_scale" yaml:"rope_freq_scale" toml:"rope_freq_scale"`

	// Request handling
	MaxBodyBytes          int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	RequestTimeoutSeconds int64 `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds"`
	MaxQueueDepth         int   `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`
	MaxWaitSeconds        int64 `json:"max_wait_seconds" yaml:"max_wait_seconds" toml:"max_wait_seconds"`

	// CORS (opt-in)
	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
}

// ApplyDefaults fills unspecified fields with package defaults and expands a
// leading '~' in the model path.
func (c *Config) ApplyDefaults() error {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ModelName == "" {
		c.ModelName = DefaultModelName
	}
	if c.CtxSize <= 0 {
		c.CtxSize = DefaultCtxSize
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.GPULayers == nil {
		n := DefaultGPULayers
		c.GPULayers = &n
	}
	if c.Threads <= 0 {
		c.Threads = DefaultThreads
	}
	if c.UseMMap == nil {
		b := true
		c.UseMMap = &b
	}
	if c.UseMLock == nil {
		b := true
		c.UseMLock = &b
	}
	if c.RopeFreqBase <= 0 {
		c.RopeFreqBase = DefaultRopeFreqBase
	}
	if c.RopeFreqScale <= 0 {
		c.RopeFreqScale = DefaultRopeFreqScale
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.RequestTimeoutSeconds < 0 {
		c.RequestTimeoutSeconds = 0
	} else if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = int64(DefaultRequestTimeout / time.Second)
	}
	if c.MaxQueueDepth <= 0 {
		c.MaxQueueDepth = DefaultMaxQueueDepth
	}
	if c.MaxWaitSeconds <= 0 {
		c.MaxWaitSeconds = int64(DefaultMaxWait / time.Second)
	}
	p, err := fsutil.ExpandHome(c.ModelPath)
	if err != nil {
		return err
	}
	c.ModelPath = p
	return nil
}

// Validate checks required values. Missing required values are a fatal
// startup error; the process must not serve without them.
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model_path is required (set INFERD_MODEL_PATH or the model_path config key)")
	}
	if len(c.APIKeys) == 0 {
		return fmt.Errorf("at least one API key is required (set INFERD_API_KEYS)")
	}
	if len(c.AdminAPIKeys) == 0 {
		return fmt.Errorf("an admin API key is required (set INFERD_ADMIN_API_KEYS)")
	}
	for _, k := range append(append([]string(nil), c.APIKeys...), c.AdminAPIKeys...) {
		if k == "" {
			return fmt.Errorf("empty API key configured")
		}
	}
	return nil
}

// RequestTimeout returns the per-generation timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// MaxWait returns the admission-queue wait limit as a duration.
func (c *Config) MaxWait() time.Duration {
	return time.Duration(c.MaxWaitSeconds) * time.Second
}
