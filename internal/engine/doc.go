// Package engine owns the lifecycle of the single loaded model instance and
// orchestrates completions against it. It is structured into small files by
// concern:
//
//   - handle.go: Handle type, load/reload/swap lifecycle, state machine.
//   - instance.go: refcounted wrapper around a live runtime session.
//   - adapter.go: Runtime/Session interfaces and generation parameter types.
//   - generate.go: validation, admission, buffered and streamed generation.
//   - prompt.go: chat-template rendering of the message sequence.
//   - errors.go: error types and predicate helpers (IsInvalidRequest, ...).
//   - metrics.go: prometheus counters for loads and generations.
//
// Build tags and runtimes:
//
//   - In-process llama: go-llama.cpp adapter, enabled with `-tags=llama`
//     (adapter_llama.go, llama_cgo.go for linker rpath hints).
//   - Without the tag, a no-CGO stub (adapter_stub.go) fails fast with a
//     dependency-unavailable load error instead of mocking inference.
//
// Reload is load-then-swap: a replacement instance is fully loaded before the
// handle switches over, and a failed load leaves the previous instance
// serving. Generations that captured an instance before a swap finish against
// it; the retired instance is closed once its last reference is released.
package engine
