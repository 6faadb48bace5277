package httpapi

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"inferd/pkg/types"
)

// completionID generates an OpenAI-style completion identifier.
func completionID() string {
	u := uuid.New()
	return "chatcmpl-" + hex.EncodeToString(u[:])
}

// handleChatCompletions godoc
// @Summary Create a chat completion
// @Description OpenAI-compatible chat completion. Set stream=true for
// @Description server-sent event chunks, otherwise a single JSON body is
// @Description returned once generation finishes.
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body types.ChatCompletionRequest true "completion request"
// @Success 200 {object} types.ChatCompletionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 429 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Failure 504 {object} types.ErrorResponse
// @Router /v1/chat/completions [post]
func handleChatCompletions(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		// Shutdown cancels in-flight generations along with client disconnect.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		id := completionID()
		created := time.Now().Unix()
		model := svc.ModelName()
		start := time.Now()

		if req.Stream {
			streamCompletion(w, r, svc, req, id, created, model, ctx, start)
			return
		}

		res, err := svc.Complete(ctx, req)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := writeEngineError(w, err)
			logRequest(r, status, time.Since(start), err)
			return
		}
		writeJSON(w, http.StatusOK, types.ChatCompletionResponse{
			ID:      id,
			Object:  "chat.completion",
			Created: created,
			Model:   model,
			Choices: []types.Choice{{
				Index:        0,
				Message:      types.Message{Role: types.RoleAssistant, Content: res.Content},
				FinishReason: res.FinishReason,
			}},
			Usage: types.Usage{
				PromptTokens:     res.Usage.PromptTokens,
				CompletionTokens: res.Usage.CompletionTokens,
				TotalTokens:      res.Usage.TotalTokens,
			},
		})
		logRequest(r, http.StatusOK, time.Since(start), nil)
	}
}

// streamCompletion delivers the completion as server-sent events. The SSE
// headers are only committed once the first token arrives, so validation and
// admission failures still produce a proper JSON error status.
func streamCompletion(w http.ResponseWriter, r *http.Request, svc Service, req types.ChatCompletionRequest, id string, created int64, model string, ctx context.Context, start time.Time) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported by connection")
		return
	}
	lvl := requestLogLevel(r)

	chunk := func(delta types.Delta, finish *string, usage *types.Usage) types.ChatCompletionChunk {
		return types.ChatCompletionChunk{
			ID:      id,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   model,
			Choices: []types.ChunkChoice{{Index: 0, Delta: delta, FinishReason: finish}},
			Usage:   usage,
		}
	}
	writeFrame := func(c types.ChatCompletionChunk) error {
		b, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if lvl >= LevelDebug {
			logLine("sse> %s", b)
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", b); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	opened := false
	open := func() error {
		if opened {
			return nil
		}
		opened = true
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		// First frame carries the assistant role, per OpenAI streaming.
		return writeFrame(chunk(types.Delta{Role: types.RoleAssistant}, nil, nil))
	}

	res, err := svc.Stream(ctx, req, func(delta string) error {
		if err := open(); err != nil {
			return err
		}
		return writeFrame(chunk(types.Delta{Content: delta}, nil, nil))
	})
	if err != nil {
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		if !opened {
			status := writeEngineError(w, err)
			logRequest(r, status, time.Since(start), err)
			return
		}
		// The stream is already committed; the truncated output and the
		// missing [DONE] marker are the failure signal to the client.
		logRequest(r, http.StatusOK, time.Since(start), err)
		return
	}
	if err := open(); err != nil {
		return
	}
	finish := res.FinishReason
	_ = writeFrame(chunk(types.Delta{}, &finish, &types.Usage{
		PromptTokens:     res.Usage.PromptTokens,
		CompletionTokens: res.Usage.CompletionTokens,
		TotalTokens:      res.Usage.TotalTokens,
	}))
	_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
	logRequest(r, http.StatusOK, time.Since(start), nil)
}
