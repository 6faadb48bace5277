package types

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Health status, always "ok" while the process serves requests.
	// example: ok
	Status string `json:"status" example:"ok"`
	// Whether a model instance is loaded and ready.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
}

// ServerInfo is returned by GET /admin/info.
type ServerInfo struct {
	// Configured model name used in API responses.
	// example: llama-3-8b
	ModelName string `json:"model_name" example:"llama-3-8b"`
	// Absolute path to the loaded model file.
	// example: /srv/models/llama-3-8b.Q4_K_M.gguf
	ModelPath string `json:"model_path" example:"/srv/models/llama-3-8b.Q4_K_M.gguf"`
	// Context window size in tokens.
	// example: 4096
	CtxSize int `json:"n_ctx" example:"4096"`
	// Prompt-processing batch size.
	// example: 512
	BatchSize int `json:"n_batch" example:"512"`
	// Number of layers offloaded to the GPU (-1 = all).
	// example: -1
	GPULayers int `json:"n_gpu_layers" example:"-1"`
	// Number of CPU threads used for generation.
	// example: 8
	Threads int `json:"n_threads" example:"8"`
	// Whether the model file is memory-mapped.
	// example: true
	UseMMap bool `json:"use_mmap" example:"true"`
	// Whether model memory is locked in RAM.
	// example: true
	UseMLock bool `json:"use_mlock" example:"true"`
	// Lifecycle state of the engine handle (loading, ready, failed).
	// example: ready
	State string `json:"state" example:"ready"`
	// Whether a usable engine instance is currently loaded.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Last load or generation error observed, if any.
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Total successful model loads (including reloads).
	// example: 2
	LoadsTotal uint64 `json:"loads_total" example:"2"`
	// Maximum queued generation requests before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
	// Per-request generation timeout in seconds (0 = disabled).
	// example: 120
	RequestTimeoutSeconds int64 `json:"request_timeout_seconds" example:"120"`
}

// ReloadRequest carries optional overrides for POST /admin/reload.
// Zero-valued fields keep the currently configured value.
type ReloadRequest struct {
	// New model file path.
	// example: /srv/models/other.Q4_K_M.gguf
	ModelPath string `json:"model_path,omitempty" example:"/srv/models/other.Q4_K_M.gguf"`
	// New model name for API responses.
	// example: other-model
	ModelName string `json:"model_name,omitempty" example:"other-model"`
	// New context window size.
	// example: 8192
	CtxSize int `json:"n_ctx,omitempty" example:"8192"`
	// New batch size.
	// example: 256
	BatchSize int `json:"n_batch,omitempty" example:"256"`
	// New GPU layer count. Use -1 for all layers.
	// example: -1
	GPULayers int `json:"n_gpu_layers,omitempty" example:"-1"`
}

// ReloadResponse is returned by POST /admin/reload.
type ReloadResponse struct {
	// Outcome of the reload (success or error).
	// example: success
	Status string `json:"status" example:"success"`
	// Human-readable status message.
	// example: model reloaded
	Message string `json:"message" example:"model reloaded"`
	// Engine diagnostics after the reload attempt.
	Info ServerInfo `json:"info"`
}

// RootInfo is returned by the public GET / endpoint.
type RootInfo struct {
	// Service name.
	// example: inferd
	Name string `json:"name" example:"inferd"`
	// Service version.
	// example: 0.1.0
	Version string `json:"version" example:"0.1.0"`
	// Configured model name.
	// example: llama-3-8b
	Model string `json:"model" example:"llama-3-8b"`
	// Map of endpoint descriptions to routes.
	Endpoints map[string]string `json:"endpoints"`
}
