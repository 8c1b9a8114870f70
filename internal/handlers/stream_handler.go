package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
	"github.com/BruksfildServices01/visit-tracker/internal/httpresp"
)

const (
	EventSnapshot = "snapshot"
	EventError    = "error"
	EventPing     = "ping"
)

var streamHeartbeat = 25 * time.Second

type streamEvent struct {
	name    string
	payload any
}

// Stream serves a partition feed as Server-Sent Events. Each "snapshot"
// event carries the full list; an "error" event ends the stream.
func (h *ClientHandler) Stream(c *gin.Context) {
	userID, day, ok := partition(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// one slot holding the newest event; the feed goroutine is the only
	// producer, so drain-then-send never blocks
	events := make(chan streamEvent, 1)
	push := func(ev streamEvent) {
		select {
		case events <- ev:
		default:
			select {
			case <-events:
			default:
			}
			events <- ev
		}
	}

	unsubscribe := h.gw.Subscribe(ctx, userID, day,
		func(clients []visit.Client) {
			push(streamEvent{name: EventSnapshot, payload: httpresp.NewList(clients)})
		},
		func(err error) {
			h.logger.Warn(ctx, "stream feed failed", "user_id", userID, "day", day, "error", err)
			code := httperr.CodeOf(err)
			if code == "" {
				code = "subscription_failed"
			}
			push(streamEvent{name: EventError, payload: httperr.HTTPError{Code: code, Message: "Live updates stopped."}})
		},
	)
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-heartbeat.C:
			c.SSEvent(EventPing, "")
			return true
		case ev := <-events:
			c.SSEvent(ev.name, ev.payload)
			return ev.name != EventError
		}
	})
}
