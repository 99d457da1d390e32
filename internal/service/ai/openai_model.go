package ai

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sashabaranov/go-openai"

	"github.com/sharma-alok1/RailMate/backend/internal/config"
)

// openaiClient is the subset of *openai.Client the adapter needs.
type openaiClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIChatModel adapts any OpenAI-compatible chat completions endpoint to
// eino's BaseChatModel.
type OpenAIChatModel struct {
	client   openaiClient
	defaults model.Options
}

// NewOpenAIChatModel creates the adapter from configuration.
func NewOpenAIChatModel(c config.AIConfig) *OpenAIChatModel {
	clientCfg := openai.DefaultConfig(c.APIKey)
	if c.BaseURL != "" {
		clientCfg.BaseURL = c.BaseURL
	}

	modelName := c.Model
	return &OpenAIChatModel{
		client: openai.NewClientWithConfig(clientCfg),
		defaults: model.Options{
			Model:       &modelName,
			Temperature: toFloat32(c.Temperature),
			TopP:        toFloat32(c.TopP),
			MaxTokens:   c.MaxTokens,
		},
	}
}

// Generate issues one non-streaming chat completion.
func (m *OpenAIChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	base := m.defaults
	options := model.GetCommonOptions(&base, opts...)

	req := openai.ChatCompletionRequest{
		Messages: make([]openai.ChatCompletionMessage, 0, len(input)),
	}
	if options.Model != nil {
		req.Model = *options.Model
	}
	if options.Temperature != nil {
		req.Temperature = *options.Temperature
	}
	if options.TopP != nil {
		req.TopP = *options.TopP
	}
	if options.MaxTokens != nil {
		req.MaxTokens = *options.MaxTokens
	}
	for _, msg := range input {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(msg.Role),
			Content: msg.Content,
		})
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}
	return schema.AssistantMessage(resp.Choices[0].Message.Content, nil), nil
}

// Stream delivers the Generate result as a single chunk.
func (m *OpenAIChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func toOpenAIRole(role schema.RoleType) string {
	switch role {
	case schema.System:
		return openai.ChatMessageRoleSystem
	case schema.Assistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
