package types

// Role values accepted in chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a chat conversation.
type Message struct {
	// Role of the message sender (system, user or assistant).
	// example: user
	Role string `json:"role" example:"user"`
	// Text content of the message. Empty content is allowed.
	// example: Count to 3.
	Content string `json:"content" example:"Count to 3."`
}

// ChatCompletionRequest is the OpenAI-compatible body for POST /v1/chat/completions.
type ChatCompletionRequest struct {
	// Optional model identifier. Must match the configured model when set.
	// example: llama-3-8b
	Model string `json:"model,omitempty" example:"llama-3-8b"`
	// Ordered conversation. Must contain at least one message.
	Messages []Message `json:"messages"`
	// Sampling temperature in [0, 2]. Defaults to 0.7 when omitted.
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" example:"0.7"`
	// Nucleus sampling probability in [0, 1]. Defaults to 1.0 when omitted.
	// example: 0.9
	TopP *float64 `json:"top_p,omitempty" example:"0.9"`
	// Maximum number of tokens to generate. Defaults to 500, bounded by the
	// context window.
	// example: 500
	MaxTokens int `json:"max_tokens,omitempty" example:"500"`
	// If true, deliver the completion as server-sent event chunks.
	// example: false
	Stream bool `json:"stream,omitempty" example:"false"`
	// Optional stop sequences. Generation stops when any sequence is matched.
	Stop []string `json:"stop,omitempty"`
	// Random seed for reproducibility; 0 or omitted lets the engine choose.
	// example: 42
	Seed int64 `json:"seed,omitempty" example:"42"`
}

// Usage contains token accounting for a completion.
type Usage struct {
	// Number of tokens in the rendered prompt.
	// example: 12
	PromptTokens int `json:"prompt_tokens" example:"12"`
	// Number of generated tokens.
	// example: 9
	CompletionTokens int `json:"completion_tokens" example:"9"`
	// Prompt plus completion tokens.
	// example: 21
	TotalTokens int `json:"total_tokens" example:"21"`
}

// Choice is a single buffered completion choice.
type Choice struct {
	// Index of this choice.
	// example: 0
	Index int `json:"index" example:"0"`
	// The generated assistant message.
	Message Message `json:"message"`
	// Reason generation stopped (stop, length).
	// example: stop
	FinishReason string `json:"finish_reason" example:"stop"`
}

// ChatCompletionResponse is the buffered response for POST /v1/chat/completions.
type ChatCompletionResponse struct {
	// Unique identifier for this completion.
	// example: chatcmpl-9f2b1c0d4e6a
	ID string `json:"id" example:"chatcmpl-9f2b1c0d4e6a"`
	// Object type, always "chat.completion".
	// example: chat.completion
	Object string `json:"object" example:"chat.completion"`
	// Unix timestamp of creation.
	// example: 1700000000
	Created int64 `json:"created" example:"1700000000"`
	// Model used for this completion.
	// example: llama-3-8b
	Model   string   `json:"model" example:"llama-3-8b"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Delta carries the incremental part of a streamed chunk.
type Delta struct {
	// Role, set on the first chunk only.
	// example: assistant
	Role string `json:"role,omitempty" example:"assistant"`
	// Text fragment emitted by the engine.
	Content string `json:"content,omitempty"`
}

// ChunkChoice is a single choice within a streamed chunk.
type ChunkChoice struct {
	// Index of this choice.
	// example: 0
	Index int   `json:"index" example:"0"`
	Delta Delta `json:"delta"`
	// Set on the terminal chunk (stop, length); null otherwise.
	FinishReason *string `json:"finish_reason"`
}

// ChatCompletionChunk is one server-sent event of a streamed completion.
type ChatCompletionChunk struct {
	// Identifier shared by all chunks of one completion.
	// example: chatcmpl-9f2b1c0d4e6a
	ID string `json:"id" example:"chatcmpl-9f2b1c0d4e6a"`
	// Object type, always "chat.completion.chunk".
	// example: chat.completion.chunk
	Object string `json:"object" example:"chat.completion.chunk"`
	// Unix timestamp of creation, shared by all chunks.
	// example: 1700000000
	Created int64 `json:"created" example:"1700000000"`
	// Model producing the completion.
	// example: llama-3-8b
	Model   string        `json:"model" example:"llama-3-8b"`
	Choices []ChunkChoice `json:"choices"`
	// Token accounting, present on the terminal chunk only.
	Usage *Usage `json:"usage,omitempty"`
}

// ModelInfo describes the configured model for GET /v1/models.
type ModelInfo struct {
	// Model identifier.
	// example: llama-3-8b
	ID string `json:"id" example:"llama-3-8b"`
	// Object type, always "model".
	// example: model
	Object string `json:"object" example:"model"`
	// Owner label for OpenAI compatibility.
	// example: local
	OwnedBy string `json:"owned_by" example:"local"`
}

// ModelsResponse is the OpenAI list wrapper for GET /v1/models.
type ModelsResponse struct {
	// Object type, always "list".
	// example: list
	Object string      `json:"object" example:"list"`
	Data   []ModelInfo `json:"data"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
