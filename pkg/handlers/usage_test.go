package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/models"
)

func TestUsageHandlerListsRecords(t *testing.T) {
	usage := &mockUsageRepo{
		Records: []*models.UsageRecord{
			{Prompt: "how many users", Success: true, CreatedAt: time.Now()},
			{Prompt: "users in atlantis", Success: false, Error: "no data returned from query"},
		},
	}
	h := NewUsageHandler(usage, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/ai/usage", nil)
	w := httptest.NewRecorder()
	h.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Records []*models.UsageRecord `json:"records"`
		Count   int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Records, 2)
	assert.Equal(t, "how many users", body.Records[0].Prompt)
}

func TestUsageHandlerRejectsBadLimit(t *testing.T) {
	h := NewUsageHandler(&mockUsageRepo{}, zap.NewNop())

	for _, limit := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/ai/usage?limit="+limit, nil)
		w := httptest.NewRecorder()
		h.Handle(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
	}
}

func TestUsageHandlerRepositoryError(t *testing.T) {
	usage := &mockUsageRepo{ListErr: errors.New("connection reset")}
	h := NewUsageHandler(usage, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/ai/usage", nil)
	w := httptest.NewRecorder()
	h.Handle(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
