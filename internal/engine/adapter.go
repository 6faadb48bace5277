package engine

import "context"

// Runtime abstracts the native model runtime wrapped by the Handle.
// Concrete implementations (go-llama.cpp) satisfy this interface; tests
// substitute a fake.
type Runtime interface {
	// Load opens the model file and prepares a session for generation.
	// It must not mutate any previously returned session.
	Load(path string, cfg ModelConfig) (Session, error)
}

// Session is a loaded model instance capable of repeated generations.
// Sessions are not safe for concurrent Generate calls; the Handle serializes
// access through its admission queue.
type Session interface {
	// Generate produces tokens for the rendered prompt. onToken is invoked
	// for each emitted token in order and may be nil for buffered use.
	// Implementations must stop consuming the engine and return promptly
	// when ctx is canceled or onToken returns an error.
	Generate(ctx context.Context, prompt string, params GenParams, onToken func(string) error) (Result, error)
	// Close releases resources held by the session.
	Close() error
}

// GenParams captures generation parameters passed to the runtime.
type GenParams struct {
	Temperature float32
	TopP        float32
	MaxTokens   int
	Stop        []string
	Seed        int
}

// Usage contains token accounting for one generation.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Result summarizes a finished generation.
type Result struct {
	Content      string
	FinishReason string
	Usage        Usage
}
