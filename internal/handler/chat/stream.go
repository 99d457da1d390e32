package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharma-alok1/RailMate/backend/pkg/log"
	"github.com/sharma-alok1/RailMate/backend/pkg/utils"
)

const errStreamingUnsupported = "streaming unsupported"

type streamStart struct {
	SessionID string `json:"sessionId"`
}

type streamChunk struct {
	Content string `json:"content"`
}

// handleStream answers one user turn over Server-Sent Events: a start event,
// one chunk event per model delta, then an end event carrying the stored
// reply. The end event is authoritative when the reply fell back.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	userMessage := r.URL.Query().Get("message")
	if sessionID == "" || userMessage == "" {
		utils.RespondError(w, http.StatusBadRequest, errFieldsRequired)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, errStreamingUnsupported)
		return
	}

	utils.SetupSSEHeaders(w)
	ctx := r.Context()

	utils.SendSSEEvent(w, flusher, "start", streamStart{SessionID: sessionID})

	transcript := h.chatSvc.Append(ctx, sessionID, userMessage)
	completion := h.completer.CompleteStream(ctx, sessionID, transcript, func(chunk string) {
		utils.SendSSEEvent(w, flusher, "chunk", streamChunk{Content: chunk})
	})

	utils.SendSSEEvent(w, flusher, "end", h.record(ctx, sessionID, completion))
	log.Debugw("stream completed", "sessionId", sessionID, "fallback", completion.Fallback)
}
