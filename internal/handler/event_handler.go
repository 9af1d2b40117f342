package handler

import (
	"io"
	"time"

	"campaign/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

var watchedTables = map[string]bool{
	"registrations": true,
	"teams":         true,
	"users":         true,
}

// StreamEvents godoc
// @Summary      Subscribe to table changes
// @Description  Server-Sent Events. Each change event is a re-fetch hint carrying table, type and id.
// @Tags         events
// @Produce      text/event-stream
// @Security     CookieAuth
// @Param        table query string true "registrations, teams or users"
// @Success      200 {string} string "event stream"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /events [get]
func (h *Handler) StreamEvents(c *gin.Context) {
	table := c.Query("table")
	if !watchedTables[table] {
		h.fail(c, &ValidationError{Field: "table", Message: "must be registrations, teams or users"})
		return
	}

	client := make(hub.Client, 16)
	h.hub.Subscribe(table, client)
	defer h.hub.Unsubscribe(table, client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("ready", table)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("change", string(msg))
			return true
		case <-time.After(h.keepAlive):
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
