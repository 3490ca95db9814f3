package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/evenup/evenup/internal/adapter/http/dto"
	"github.com/evenup/evenup/internal/calculator"
	"github.com/evenup/evenup/internal/domain"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	GetBalances(ctx context.Context, groupID string) (calculator.Balances, error)
	GetSimplifiedDebts(ctx context.Context, groupID string) ([]domain.SimplifiedDebt, error)
	CheckConsistency(ctx context.Context, groupID string) (bool, decimal.Decimal, error)
}

// BalanceHandler handles balance and debt HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// GetBalances returns every member's net balance in a group.
func (h *BalanceHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	balances, err := h.balanceUC.GetBalances(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromCalculator(groupID, balances))
}

// GetDebts returns the minimal suggested payments that settle the group.
func (h *BalanceHandler) GetDebts(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	debts, err := h.balanceUC.GetSimplifiedDebts(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to simplify debts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DebtsFromDomain(groupID, debts))
}

// CheckConsistency verifies that the group's balances sum to zero.
func (h *BalanceHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	consistent, drift, err := h.balanceUC.CheckConsistency(r.Context(), groupID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{
		GroupID:    groupID,
		Consistent: consistent,
		Drift:      drift,
	})
}
