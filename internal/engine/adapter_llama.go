//go:build llama

package engine

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// NewLlamaRuntime returns the in-process go-llama.cpp runtime.
func NewLlamaRuntime() Runtime { return &llamaRuntime{} }

type llamaRuntime struct{}

func (r *llamaRuntime) Load(path string, cfg ModelConfig) (Session, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	mo := []llama.ModelOption{
		llama.SetContext(cfg.CtxSize),
		llama.SetNBatch(cfg.BatchSize),
		llama.SetMMap(cfg.UseMMap),
		llama.SetMlock(cfg.UseMLock),
	}
	if cfg.GPULayers != 0 {
		n := cfg.GPULayers
		if n < 0 {
			// -1 means offload everything; the binding wants a large count.
			n = 1 << 10
		}
		mo = append(mo, llama.SetGPULayers(n))
	}
	if cfg.RopeFreqBase > 0 {
		mo = append(mo, llama.WithRopeFreqBase(float32(cfg.RopeFreqBase)))
	}
	if cfg.RopeFreqScale > 0 {
		mo = append(mo, llama.WithRopeFreqScale(float32(cfg.RopeFreqScale)))
	}
	m, err := llama.New(path, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaSession{model: m, threads: cfg.Threads}, nil
}

// llamaSession owns one loaded model context.
type llamaSession struct {
	model   *llama.LLama
	threads int
}

func (s *llamaSession) Generate(ctx context.Context, prompt string, params GenParams, onToken func(string) error) (Result, error) {
	if s.model == nil {
		return Result{}, errors.New("llama model not initialized")
	}

	completionTokens := 0
	var b strings.Builder
	// Bridge token streaming to onToken and respect cancellation.
	s.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		completionTokens++
		b.WriteString(tok)
		if onToken != nil {
			if err := onToken(tok); err != nil {
				return false
			}
		}
		return true
	})

	po := []llama.PredictOption{
		llama.SetTokens(params.MaxTokens),
		llama.SetThreads(max(1, s.threads)),
		llama.SetTemperature(params.Temperature),
		llama.SetTopP(params.TopP),
	}
	if params.Seed != 0 {
		po = append(po, llama.SetSeed(params.Seed))
	}
	if len(params.Stop) > 0 {
		po = append(po, llama.SetStopWords(params.Stop...))
	}
	text, err := s.model.Predict(prompt, po...)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, err
	}
	if text == "" {
		text = b.String()
	}
	finish := "stop"
	if completionTokens >= params.MaxTokens {
		finish = "length"
	}
	// The binding exposes no usage accounting; completion tokens are counted
	// from the callback and prompt tokens estimated from the rendered prompt.
	promptTokens := estimateTokens(prompt)
	return Result{
		Content:      text,
		FinishReason: finish,
		Usage: Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}, nil
}

func (s *llamaSession) Close() error {
	if s.model != nil {
		s.model.Free()
		s.model = nil
	}
	return nil
}

// estimateTokens approximates a token count at four bytes per token.
func estimateTokens(s string) int {
	n := (len(s) + 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
