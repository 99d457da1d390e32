package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/sharma-alok1/RailMate/backend/internal/config"
	"github.com/sharma-alok1/RailMate/backend/internal/model/chat"
	"github.com/sharma-alok1/RailMate/backend/pkg/log"
)

var (
	ErrModelUnavailable = errors.New("chat model unavailable")
	ErrNoUserTurn       = errors.New("transcript does not end with a user message")
)

// Completion is the assistant turn produced for a transcript. Fallback marks
// a canned reply used because the completion service failed.
type Completion struct {
	Content  string
	Fallback bool
}

// Service turns stored transcripts into completion requests.
type Service struct {
	chatModel model.BaseChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
	timeout   time.Duration
	fallback  string
}

// NewService builds the configured provider. When cfg is not enabled the
// service still works but answers every turn with the fallback reply.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return NewServiceWithModel(ctx, nil, cfg.Timeout)
	}

	chatModel, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, cfg.Timeout)
}

// NewServiceWithModel wires an existing model into the prompt chain. A nil
// model yields a fallback-only service.
func NewServiceWithModel(ctx context.Context, chatModel model.BaseChatModel, timeout time.Duration) (*Service, error) {
	svc := &Service{
		chatModel: chatModel,
		timeout:   timeout,
		fallback:  chat.FallbackReply,
	}
	if chatModel == nil {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}
	svc.chain = runnable
	return svc, nil
}

// Enabled reports whether a real model backs the service.
func (s *Service) Enabled() bool {
	return s.chain != nil
}

// Complete sends the transcript to the model: every message but the last
// becomes history and the last user message is the new turn. Failures are
// logged and answered with the fallback reply, never returned.
func (s *Service) Complete(ctx context.Context, sessionID string, transcript []chat.Message) Completion {
	content, err := s.generate(ctx, transcript)
	if err != nil {
		log.Error("completion failed, using fallback reply", err, "sessionId", sessionID)
		return Completion{Content: s.fallback, Fallback: true}
	}

	log.Debugw("generated completion", "sessionId", sessionID, "length", len(content))
	return Completion{Content: content}
}

func (s *Service) generate(ctx context.Context, transcript []chat.Message) (string, error) {
	input, err := s.prepare(transcript)
	if err != nil {
		return "", err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return "", errors.New("empty response from chat model")
	}
	return response.Content, nil
}

// CompleteStream is Complete with incremental delivery: onChunk sees every
// non-empty piece as it arrives. On failure, including one after chunks were
// delivered, the result is the fallback reply and the partial text is dropped.
func (s *Service) CompleteStream(ctx context.Context, sessionID string, transcript []chat.Message, onChunk func(string)) Completion {
	content, err := s.stream(ctx, transcript, onChunk)
	if err != nil {
		log.Error("streaming completion failed, using fallback reply", err, "sessionId", sessionID)
		return Completion{Content: s.fallback, Fallback: true}
	}
	return Completion{Content: content}
}

func (s *Service) stream(ctx context.Context, transcript []chat.Message, onChunk func(string)) (string, error) {
	input, err := s.prepare(transcript)
	if err != nil {
		return "", err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	reader, err := s.chain.Stream(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to start AI stream: %w", err)
	}
	defer reader.Close()

	var sb strings.Builder
	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to receive stream chunk: %w", err)
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		sb.WriteString(chunk.Content)
		if onChunk != nil {
			onChunk(chunk.Content)
		}
	}
	return sb.String(), nil
}

func (s *Service) prepare(transcript []chat.Message) (map[string]any, error) {
	if s.chain == nil {
		return nil, ErrModelUnavailable
	}

	n := len(transcript)
	if n == 0 || transcript[n-1].Role != chat.RoleUser {
		return nil, ErrNoUserTurn
	}

	return map[string]any{
		"history": buildHistoryMessages(transcript[:n-1]),
		"query":   transcript[n-1].Content,
	}, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			history = append(history, schema.SystemMessage(msg.Content))
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
