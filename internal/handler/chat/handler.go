package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharma-alok1/RailMate/backend/internal/model/chat"
	"github.com/sharma-alok1/RailMate/backend/internal/service/ai"
	chatService "github.com/sharma-alok1/RailMate/backend/internal/service/chat"
	"github.com/sharma-alok1/RailMate/backend/pkg/log"
	"github.com/sharma-alok1/RailMate/backend/pkg/utils"
)

const (
	msgInitialized      = "Conversation initialized successfully"
	msgCleared          = "Conversation cleared successfully"
	errFieldsRequired   = "Session ID and message are required"
	errSessionRequired  = "Session ID is required"
	errSessionNotFound  = "Session not found"
	errInvalidBody      = "invalid request body"
	errHistoryFailed    = "Failed to get conversation history"
	errInitializeFailed = "Failed to initialize conversation"
)

// Completer produces the assistant turn for a transcript.
type Completer interface {
	Complete(ctx context.Context, sessionID string, transcript []chat.Message) ai.Completion
	CompleteStream(ctx context.Context, sessionID string, transcript []chat.Message, onChunk func(string)) ai.Completion
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc   *chatService.Service
	completer Completer
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, completer Completer) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		completer: completer,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/initialize", h.handleInitialize)
	r.Post("/message", h.handleMessage)
	r.Get("/history", h.handleHistory)
	r.Get("/history/{sessionId}", h.handleHistory)
	r.Delete("/clear", h.handleClear)
	r.Delete("/clear/{sessionId}", h.handleClear)
	r.Get("/stream/{sessionId}", h.handleStream)
	r.Get("/ws/{sessionId}", h.handleWebSocket)
}

type initializeResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type messageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type messageResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
	Warning   string `json:"warning,omitempty"`
}

type historyResponse struct {
	Success   bool           `json:"success"`
	Messages  []chat.Message `json:"messages"`
	SessionID string         `json:"sessionId"`
}

type clearResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// handleInitialize 创建会话
func (h *Handler) handleInitialize(w http.ResponseWriter, r *http.Request) {
	if h.chatSvc == nil {
		utils.RespondError(w, http.StatusInternalServerError, errInitializeFailed)
		return
	}

	sessionID := h.chatSvc.Initialize(r.Context())
	log.Infow("conversation initialized", "sessionId", sessionID)

	utils.RespondJSON(w, http.StatusOK, initializeResponse{
		Success:   true,
		SessionID: sessionID,
		Message:   msgInitialized,
	})
}

// handleMessage 处理用户消息并返回助手回复
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload messageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	if payload.SessionID == "" || payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, errFieldsRequired)
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.converse(r.Context(), payload.SessionID, payload.Message))
}

// converse runs one user turn: append, complete, record the reply. The
// assistant turn is recorded even when it is the fallback reply.
func (h *Handler) converse(ctx context.Context, sessionID, text string) messageResponse {
	transcript := h.chatSvc.Append(ctx, sessionID, text)
	completion := h.completer.Complete(ctx, sessionID, transcript)
	return h.record(ctx, sessionID, completion)
}

func (h *Handler) record(ctx context.Context, sessionID string, completion ai.Completion) messageResponse {
	if err := h.chatSvc.AppendAssistant(ctx, sessionID, completion.Content); err != nil {
		log.Warnw("assistant reply not stored", "sessionId", sessionID, "error", err)
	}

	resp := messageResponse{
		Success:   true,
		Response:  completion.Content,
		SessionID: sessionID,
	}
	if completion.Fallback {
		resp.Warning = chat.FallbackWarning
	}
	return resp
}

// handleHistory 返回会话历史（不含系统提示）
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, errSessionRequired)
		return
	}

	messages, err := h.chatSvc.History(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, errSessionNotFound)
			return
		}
		log.Error("failed to load history", err, "sessionId", sessionID)
		utils.RespondError(w, http.StatusInternalServerError, errHistoryFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, historyResponse{
		Success:   true,
		Messages:  messages,
		SessionID: sessionID,
	})
}

// handleClear 重置会话
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, errSessionRequired)
		return
	}

	h.chatSvc.Reset(r.Context(), sessionID)

	utils.RespondJSON(w, http.StatusOK, clearResponse{
		Success:   true,
		Message:   msgCleared,
		SessionID: sessionID,
	})
}
