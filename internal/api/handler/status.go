package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetStatus reports process-level counters.
func (h *Handler) GetStatus(c *gin.Context) {
	guilds := 0
	if h.Guilds != nil {
		guilds = h.Guilds()
	}
	c.JSON(http.StatusOK, gin.H{
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"guilds":         guilds,
		"queued":         h.Queue.Depth(),
		"active_reports": h.Reports.Active(),
	})
}

// GetLedger returns the per-author point ledger.
func (h *Handler) GetLedger(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.Queue.Ledger().Entries()})
}

// GetQueue returns one guild's pending messages, head first.
func (h *Handler) GetQueue(c *gin.Context) {
	guildID := c.Param("guild")
	c.JSON(http.StatusOK, gin.H{"items": h.Queue.QueueSnapshot(guildID)})
}

// RearmAuthor resets the one-shot ban trigger for an author so the next
// threshold crossing fires again, and lets their messages be evaluated.
func (h *Handler) RearmAuthor(c *gin.Context) {
	authorID := c.Param("author")
	if !h.Queue.Ledger().Rearm(authorID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "author is not banned"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"author_id": authorID, "rearmed": true})
}
