//go:build !llama

package engine

// This file provides a no-CGO stub for the llama runtime. It is compiled
// when the 'llama' build tag is NOT set, keeping default builds and CI
// CGO-free. The real runtime lives in adapter_llama.go (tagged 'llama').
// The stub refuses to load rather than mock inference, so a binary built
// without native support fails fast at startup.

// NewLlamaRuntime returns a stub that satisfies Runtime but cannot load
// models without the 'llama' build tag.
func NewLlamaRuntime() Runtime { return &llamaRuntime{} }

type llamaRuntime struct{}

func (r *llamaRuntime) Load(path string, cfg ModelConfig) (Session, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
