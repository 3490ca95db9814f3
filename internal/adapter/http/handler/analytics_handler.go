package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evenup/evenup/internal/adapter/http/dto"
	"github.com/evenup/evenup/internal/calculator"
)

// AnalyticsService defines the behavior needed by AnalyticsHandler.
type AnalyticsService interface {
	GetGroupAnalytics(ctx context.Context, groupID string) (*calculator.GroupAnalytics, error)
}

// AnalyticsHandler handles analytics HTTP requests.
type AnalyticsHandler struct {
	analyticsUC AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsUC AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUC: analyticsUC}
}

// Get returns spending analytics for a group.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	analytics, err := h.analyticsUC.GetGroupAnalytics(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get analytics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AnalyticsFromCalculator(groupID, analytics))
}
