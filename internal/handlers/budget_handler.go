package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/money"
	"fintrack/internal/services"
)

// BudgetHandler handles monthly budget requests.
type BudgetHandler struct {
	tracker *services.Tracker
	ledger  services.Ledger
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(tracker *services.Tracker, ledger services.Ledger) *BudgetHandler {
	return &BudgetHandler{tracker: tracker, ledger: ledger}
}

// SetBudgetRequest represents the request payload for setting a monthly
// budget. Amount is in minor units; a pointer distinguishes a zero budget
// from a missing field.
type SetBudgetRequest struct {
	Amount *int64 `json:"amount" binding:"required,gte=0"`
}

// SetBudget creates or replaces the budget for the year and month in the path.
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	year, err := parsePathInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parsePathInt(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	if err := h.tracker.SetBudget(year, month, money.Money(*req.Amount)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget saved"})
}

// GetBudget returns the budget for the year and month in the path.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	year, err := parsePathInt(c, "year")
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parsePathInt(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.ledger.BudgetFor(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if budget == nil {
		respondWithError(c, apperrors.ErrBudgetNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}
