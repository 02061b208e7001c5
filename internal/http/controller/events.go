package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"svcmap/internal/events"
	"svcmap/internal/http/dto"
	"svcmap/internal/http/resp"
	"svcmap/internal/sse"
)

// Events streams map events to the client over SSE until it disconnects.
func (h *Handler) Events(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "streaming unsupported"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	client := &sse.Client{Ch: make(chan events.Event, 16)}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	heartbeat := time.NewTicker(h.cfg.SSEHeartbeat)
	defer heartbeat.Stop()

	var seq uint64
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Error("heartbeat write failed", zap.Error(err))
				return
			}
			flusher.Flush()
		case event, ok := <-client.Ch:
			if !ok {
				return
			}
			seq++
			if err := writeEvent(c.Writer, seq, event); err != nil {
				h.log.Error("write event failed", zap.String("event", string(event.Type)), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, seq uint64, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	// SSE frame mapping:
	// - id: per-connection sequence number
	// - event: the map event name (JS uses addEventListener(name, ...))
	// - data: JSON payload with the record and/or viewport value
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", seq, event.Type, payload)
	return err
}
