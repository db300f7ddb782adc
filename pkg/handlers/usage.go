package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/repositories"
)

// defaultUsageLimit caps the usage listing when no limit is given.
const defaultUsageLimit = 50

// UsageHandler serves GET /api/ai/usage.
type UsageHandler struct {
	usage  repositories.UsageRepository
	logger *zap.Logger
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usage repositories.UsageRepository, logger *zap.Logger) *UsageHandler {
	return &UsageHandler{
		usage:  usage,
		logger: logger.Named("usage"),
	}
}

// Handle returns the most recent usage records, newest first. An optional
// ?limit= query parameter bounds the result.
func (h *UsageHandler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := defaultUsageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	records, err := h.usage.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list usage", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to load usage records",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}
