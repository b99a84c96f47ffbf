package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	tracker *services.Tracker
	ledger  services.Ledger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(tracker *services.Tracker, ledger services.Ledger) *TransactionHandler {
	return &TransactionHandler{tracker: tracker, ledger: ledger}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Amount is in minor units. Type is 0 for expense, 1 for income.
type CreateTransactionRequest struct {
	BookID     uint        `json:"book_id" binding:"required"`
	CategoryID uint        `json:"category_id" binding:"required"`
	AccountID  uint        `json:"account_id" binding:"required"`
	Amount     int64       `json:"amount" binding:"required,gt=0"`
	Type       models.Kind `json:"type" binding:"txkind"`
	Remark     string      `json:"remark" binding:"max=500"`
	RecordTime *time.Time  `json:"record_time"`
}

// CreateTransaction records a new transaction and returns it.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	recordTime := time.Time{}
	if req.RecordTime != nil {
		recordTime = *req.RecordTime
	}

	transaction, err := h.tracker.AddTransaction(
		req.BookID,
		req.CategoryID,
		req.AccountID,
		money.Money(req.Amount),
		req.Type,
		req.Remark,
		recordTime,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction and restores the account balance.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tracker.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// ListTransactions returns a page of transactions, newest first. The
// optional from/to query parameters bound the record-time window (RFC 3339,
// inclusive).
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.ledger.TransactionsPage(page, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTimeQuery(c *gin.Context, param string) (*time.Time, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, param+" must be RFC 3339")
	}
	return &t, nil
}
