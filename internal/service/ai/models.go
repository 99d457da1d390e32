package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/sharma-alok1/RailMate/backend/internal/config"
)

// NewChatModel 使用配置创建一个模型实例。
func NewChatModel(ctx context.Context, c config.AIConfig) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%w: credentials or model missing for provider %q", ErrModelUnavailable, c.Provider)
	}

	switch c.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIChatModel(c), nil
	case config.ProviderArk, "":
		return newArkChatModel(ctx, c)
	default:
		return nil, fmt.Errorf("unsupported provider %q", c.Provider)
	}
}

func newArkChatModel(ctx context.Context, c config.AIConfig) (model.BaseChatModel, error) {
	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: toFloat32(c.Temperature),
		TopP:        toFloat32(c.TopP),
	}
	return ark.NewChatModel(ctx, cfg)
}

func toFloat32(v *float64) *float32 {
	if v == nil {
		return nil
	}
	f := float32(*v)
	return &f
}
