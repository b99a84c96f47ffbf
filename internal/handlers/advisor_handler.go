package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/advisor"
	"fintrack/internal/projection"
)

// AdvisorHandler exposes the advisory analysis cycle.
type AdvisorHandler struct {
	advisor *advisor.Service
	proj    *projection.Projector
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(svc *advisor.Service, proj *projection.Projector) *AdvisorHandler {
	return &AdvisorHandler{advisor: svc, proj: proj}
}

// Refresh starts a new analysis cycle in the background. The outcome is
// observable through the projection state and stream.
func (h *AdvisorHandler) Refresh(c *gin.Context) {
	// Detached from the request context so the cycle survives the response.
	h.advisor.Refresh(context.Background())
	c.JSON(http.StatusAccepted, gin.H{"message": "Analysis started"})
}

// State returns the advisory slots of the current snapshot.
func (h *AdvisorHandler) State(c *gin.Context) {
	snap := h.proj.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"is_loading": snap.IsLoading,
		"error":      snap.Error,
		"insight":    snap.Insight,
		"report":     snap.Report,
	})
}

// ClearError acknowledges and clears the published advisory error.
func (h *AdvisorHandler) ClearError(c *gin.Context) {
	h.proj.ClearError()
	c.JSON(http.StatusOK, gin.H{"message": "Error cleared"})
}
