package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"fintrack/internal/models"
	"fintrack/internal/services"
)

// ReferenceHandler serves the seeded reference collections: accounts,
// categories, and books.
type ReferenceHandler struct {
	ledger services.Ledger
	tag    language.Tag
	unit   currency.Unit
}

// NewReferenceHandler creates a new ReferenceHandler. The locale tag and
// currency unit drive balance display formatting.
func NewReferenceHandler(ledger services.Ledger, tag language.Tag, unit currency.Unit) *ReferenceHandler {
	return &ReferenceHandler{ledger: ledger, tag: tag, unit: unit}
}

// accountView is an account with its balance rendered for display.
type accountView struct {
	models.Account
	BalanceDisplay string `json:"balance_display"`
}

// ListAccounts returns all accounts with current and formatted balances.
func (h *ReferenceHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.ledger.AllAccounts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView{
			Account:        a,
			BalanceDisplay: a.Balance.Display(h.tag, h.unit),
		})
	}
	c.JSON(http.StatusOK, gin.H{"accounts": views})
}

// ListCategories returns all categories.
func (h *ReferenceHandler) ListCategories(c *gin.Context) {
	categories, err := h.ledger.AllCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListBooks returns all books.
func (h *ReferenceHandler) ListBooks(c *gin.Context) {
	books, err := h.ledger.AllBooks()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}
