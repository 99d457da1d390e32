package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sharma-alok1/RailMate/backend/pkg/log"
)

// SetupSSEHeaders 设置Server-Sent Events响应头
func SetupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// SendSSEEvent 发送带事件类型的SSE消息
func SendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Warnw("failed to marshal sse event data", "event", event, "error", err)
		return
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		log.Warnw("failed to write sse event", "event", event, "error", err)
		return
	}
	flusher.Flush()
}
