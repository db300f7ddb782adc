// Package handlers exposes the HTTP surface of the insight engine.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/apperrors"
	"github.com/kenalhq/insight-engine/pkg/models"
	"github.com/kenalhq/insight-engine/pkg/repositories"
	"github.com/kenalhq/insight-engine/pkg/services"
)

// SmartGenerateHandler serves POST /api/ai/smart-generate.
type SmartGenerateHandler struct {
	service services.SmartDashboardService
	usage   repositories.UsageRepository
	timeout time.Duration
	logger  *zap.Logger
}

// NewSmartGenerateHandler creates the handler. The usage repository may be
// nil, in which case no usage records are written.
func NewSmartGenerateHandler(
	service services.SmartDashboardService,
	usage repositories.UsageRepository,
	timeout time.Duration,
	logger *zap.Logger,
) *SmartGenerateHandler {
	return &SmartGenerateHandler{
		service: service,
		usage:   usage,
		timeout: timeout,
		logger:  logger.Named("smart_generate"),
	}
}

// Handle decodes the request, runs the pipeline and writes the envelope.
// The HTTP status follows the envelope: 200 on success, 500 on pipeline
// failure, 400 on an unreadable request body.
func (h *SmartGenerateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SmartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("invalid request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
		return
	}

	if strings.TrimSpace(req.UserPrompt) == "" {
		writeJSON(w, http.StatusBadRequest, &models.SmartResponse{
			Success: false,
			Error:   apperrors.ErrEmptyPrompt.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := h.service.ProcessSmartRequest(ctx, &req)

	h.recordUsage(&req, resp)

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

// recordUsage persists the outcome best-effort. Failures are logged and
// swallowed so accounting never breaks the user-facing request.
func (h *SmartGenerateHandler) recordUsage(req *models.SmartRequest, resp *models.SmartResponse) {
	if h.usage == nil {
		return
	}

	rec := &models.UsageRecord{
		UserID:           req.UserID,
		Prompt:           req.UserPrompt,
		SQLQuery:         resp.SQLQuery,
		Success:          resp.Success,
		Error:            resp.Error,
		ProcessingTimeMs: resp.ProcessingTimeMs,
	}
	if resp.CardConfig != nil {
		rec.ChartType = string(resp.CardConfig.Content.Chart.Type)
	}
	if resp.TokenUsage != nil {
		rec.InputTokens = resp.TokenUsage.InputTokens
		rec.OutputTokens = resp.TokenUsage.OutputTokens
		rec.EstimatedCost = resp.TokenUsage.EstimatedCost
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.usage.Record(ctx, rec); err != nil {
		h.logger.Warn("failed to record usage", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
