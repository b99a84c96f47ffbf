package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/projection"
)

// StateHandler exposes the full projection snapshot, both as a one-shot
// read and as a server-sent event stream.
type StateHandler struct {
	proj *projection.Projector
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(proj *projection.Projector) *StateHandler {
	return &StateHandler{proj: proj}
}

// State returns the current snapshot.
func (h *StateHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.proj.Snapshot())
}

// Stream pushes snapshots as server-sent events. The current snapshot is
// sent immediately; afterwards each publish delivers the latest state, with
// intermediate snapshots dropped for slow clients.
func (h *StateHandler) Stream(c *gin.Context) {
	updates, cancel := h.proj.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(_ io.Writer) bool {
		select {
		case snap, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
