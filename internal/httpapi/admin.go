package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"inferd/pkg/types"
)

// handleInfo godoc
// @Summary Engine diagnostics
// @Description Model configuration, lifecycle state and load counters.
// @Produce json
// @Security BearerAuth
// @Success 200 {object} types.ServerInfo
// @Failure 401 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /admin/info [get]
func handleInfo(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Info())
	}
}

// handleReload godoc
// @Summary Reload the model
// @Description Loads a replacement instance, optionally with overridden
// @Description parameters, and swaps it in. On failure the previous
// @Description instance keeps serving and the error is reported.
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body types.ReloadRequest false "optional overrides"
// @Success 200 {object} types.ReloadResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Failure 500 {object} types.ReloadResponse
// @Router /admin/reload [post]
func handleReload(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ReloadRequest
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			// An empty body reloads with the current configuration.
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
		}

		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		start := time.Now()
		if err := svc.Reload(ctx, req); err != nil {
			status := http.StatusInternalServerError
			writeJSON(w, status, types.ReloadResponse{
				Status:  "error",
				Message: err.Error(),
				Info:    svc.Info(),
			})
			logRequest(r, status, time.Since(start), err)
			return
		}
		msg := "model reloaded"
		if req.ModelPath != "" {
			msg = "model reloaded from " + strings.TrimSpace(req.ModelPath)
		}
		writeJSON(w, http.StatusOK, types.ReloadResponse{
			Status:  "success",
			Message: msg,
			Info:    svc.Info(),
		})
		logRequest(r, http.StatusOK, time.Since(start), nil)
	}
}
