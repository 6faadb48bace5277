package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inferd/internal/auth"
	"inferd/internal/engine"
	"inferd/pkg/types"
)

// Version is reported by the public root endpoint.
const Version = "0.1.0"

// Service defines the engine methods required by the HTTP API layer.
type Service interface {
	Ready() bool
	ModelName() string
	Info() types.ServerInfo
	Reload(ctx context.Context, req types.ReloadRequest) error
	Complete(ctx context.Context, req types.ChatCompletionRequest) (engine.Result, error)
	Stream(ctx context.Context, req types.ChatCompletionRequest, onDelta func(string) error) (engine.Result, error)
}

// NewMux builds the HTTP handler. Routes are grouped by privilege tier:
// health, metrics and docs are public, the OpenAI-compatible surface under
// /v1 requires a standard key, and /admin requires an admin key.
func NewMux(svc Service, keys *auth.Keys) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", handleRoot(svc))
	r.Get("/health", handleHealth(svc))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	r.Group(func(g chi.Router) {
		g.Use(keys.Require(auth.TierStandard))
		g.Get("/v1/models", handleModels(svc))
		g.Post("/v1/chat/completions", handleChatCompletions(svc))
	})

	r.Group(func(g chi.Router) {
		g.Use(keys.Require(auth.TierAdmin))
		g.Get("/admin/info", handleInfo(svc))
		g.Post("/admin/reload", handleReload(svc))
	})

	return r
}

// handleRoot godoc
// @Summary Service banner
// @Description Name, version and a map of the available endpoints.
// @Produce json
// @Success 200 {object} types.RootInfo
// @Router / [get]
func handleRoot(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.RootInfo{
			Name:    "inferd",
			Version: Version,
			Model:   svc.ModelName(),
			Endpoints: map[string]string{
				"health":           "/health",
				"metrics":          "/metrics",
				"models":           "/v1/models",
				"chat_completions": "/v1/chat/completions",
				"admin_info":       "/admin/info",
				"admin_reload":     "/admin/reload",
			},
		})
	}
}

// handleHealth godoc
// @Summary Liveness probe
// @Description Always 200 while the process serves requests; model_loaded
// @Description reflects whether generations can currently be served.
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Router /health [get]
func handleHealth(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.HealthResponse{
			Status:      "ok",
			ModelLoaded: svc.Ready(),
		})
	}
}

// handleModels godoc
// @Summary List models
// @Description OpenAI-compatible model listing. A single model is served.
// @Produce json
// @Security BearerAuth
// @Success 200 {object} types.ModelsResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /v1/models [get]
func handleModels(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelsResponse{
			Object: "list",
			Data: []types.ModelInfo{
				{ID: svc.ModelName(), Object: "model", OwnedBy: "local"},
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
