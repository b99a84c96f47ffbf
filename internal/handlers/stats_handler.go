package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// StatsHandler serves derived aggregates.
type StatsHandler struct {
	stats services.Stats
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats services.Stats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// TodayStats returns the current day's expense and income totals.
func (h *StatsHandler) TodayStats(c *gin.Context) {
	stats, err := h.stats.TodayStats(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"today_stats": stats})
}

// MonthlyStats returns the aggregate for the year and month in the path.
func (h *StatsHandler) MonthlyStats(c *gin.Context) {
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

	stats, err := h.stats.MonthlyStats(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthly_stats": stats})
}

// BudgetUsage returns the current month's budget consumption.
func (h *StatsHandler) BudgetUsage(c *gin.Context) {
	usage, err := h.stats.BudgetUsage(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget_usage": usage})
}
