package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/adapter/http/dto"
	"github.com/evenup/evenup/internal/domain"
	"github.com/evenup/evenup/internal/usecase"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	RecordSettlement(ctx context.Context, input usecase.RecordSettlementInput) (*domain.Settlement, error)
	ListSettlements(ctx context.Context, groupID string) ([]*domain.Settlement, error)
	MaxSettlementAmount(ctx context.Context, groupID, fromMemberID, toMemberID string) (decimal.Decimal, error)
}

// SettlementHandler handles settlement-related HTTP requests.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Create records a payment between two members.
func (h *SettlementHandler) Create(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	var req dto.RecordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settlement, err := h.settlementUC.RecordSettlement(r.Context(), req.ToUseCaseInput(groupID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SettlementFromDomain(settlement))
}

// List lists a group's settlements.
func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	settlements, err := h.settlementUC.ListSettlements(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list settlements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSettlementsResponse{
		Settlements: dto.SettlementsFromDomain(settlements),
		Total:       int64(len(settlements)),
	})
}

// Max returns the largest admissible payment from one member to another.
func (h *SettlementHandler) Max(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "missing from or to member ID", "")
		return
	}

	max, err := h.settlementUC.MaxSettlementAmount(r.Context(), groupID, from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute max settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MaxSettlementResponse{
		FromMemberID: from,
		ToMemberID:   to,
		MaxAmount:    max,
	})
}
