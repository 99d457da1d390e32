package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sharma-alok1/RailMate/backend/pkg/log"
	"github.com/sharma-alok1/RailMate/backend/pkg/utils"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type inboundFrame struct {
	Message string `json:"message"`
}

type outgoingFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Response  string `json:"response,omitempty"`
	Warning   string `json:"warning,omitempty"`
	Error     string `json:"error,omitempty"`
}

// handleWebSocket 在一个连接上处理多轮对话
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, errSessionRequired)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnw("websocket upgrade failed", "sessionId", sessionID, "error", err)
		return
	}
	defer conn.Close()

	log.Infow("websocket connected", "sessionId", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go pingLoop(ctx, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnw("websocket read error", "sessionId", sessionID, "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			if !writeFrame(conn, outgoingFrame{Type: "error", Error: errInvalidBody}) {
				return
			}
			continue
		}
		if frame.Message == "" {
			if !writeFrame(conn, outgoingFrame{Type: "error", Error: errFieldsRequired}) {
				return
			}
			continue
		}

		resp := h.converse(ctx, sessionID, frame.Message)
		if !writeFrame(conn, outgoingFrame{
			Type:      "message",
			SessionID: resp.SessionID,
			Response:  resp.Response,
			Warning:   resp.Warning,
		}) {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, frame outgoingFrame) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(frame); err != nil {
		log.Warnw("websocket write failed", "error", err)
		return false
	}
	return true
}

func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
