package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharma-alok1/RailMate/backend/internal/config"
	"github.com/sharma-alok1/RailMate/backend/internal/model/chat"
)

type fakeChatModel struct {
	mu    sync.Mutex
	reply string
	err   error
	block bool
	got   []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	f.got = input
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (f *fakeChatModel) received() []*schema.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.got
}

func sampleTranscript() []chat.Message {
	return []chat.Message{
		chat.SystemMessage("You are RailMate."),
		chat.AssistantMessage("Hello! How can I help?"),
		chat.UserMessage("Trains from NDLS to BCT?"),
		chat.AssistantMessage("Rajdhani Express runs daily."),
		chat.UserMessage("What is the fare in 3A?"),
	}
}

func TestCompleteMapsRolesInOrder(t *testing.T) {
	fake := &fakeChatModel{reply: "The 3A fare is ₹1995."}
	svc, err := NewServiceWithModel(context.Background(), fake, time.Second)
	require.NoError(t, err)
	require.True(t, svc.Enabled())

	got := svc.Complete(context.Background(), "s1", sampleTranscript())
	assert.Equal(t, Completion{Content: "The 3A fare is ₹1995."}, got)

	sent := fake.received()
	require.Len(t, sent, 5)
	wantRoles := []schema.RoleType{schema.System, schema.Assistant, schema.User, schema.Assistant, schema.User}
	for i, msg := range sent {
		assert.Equal(t, wantRoles[i], msg.Role, "message %d", i)
	}
	assert.Equal(t, "You are RailMate.", sent[0].Content)
	assert.Equal(t, "What is the fare in 3A?", sent[4].Content)
}

func TestCompleteKeepsBracesInUserText(t *testing.T) {
	fake := &fakeChatModel{reply: "ok"}
	svc, err := NewServiceWithModel(context.Background(), fake, time.Second)
	require.NoError(t, err)

	transcript := []chat.Message{chat.SystemMessage("sys"), chat.UserMessage("what does {query} mean?")}
	svc.Complete(context.Background(), "s1", transcript)

	sent := fake.received()
	require.Len(t, sent, 2)
	assert.Equal(t, "what does {query} mean?", sent[1].Content)
}

func TestCompleteFallsBackOnModelError(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("quota exceeded")}
	svc, err := NewServiceWithModel(context.Background(), fake, time.Second)
	require.NoError(t, err)

	got := svc.Complete(context.Background(), "s1", sampleTranscript())
	assert.True(t, got.Fallback)
	assert.Equal(t, chat.FallbackReply, got.Content)
}

func TestCompleteFallsBackOnTimeout(t *testing.T) {
	fake := &fakeChatModel{block: true}
	svc, err := NewServiceWithModel(context.Background(), fake, 20*time.Millisecond)
	require.NoError(t, err)

	got := svc.Complete(context.Background(), "s1", sampleTranscript())
	assert.True(t, got.Fallback)
}

func TestCompleteWithoutModel(t *testing.T) {
	svc, err := NewService(context.Background(), config.AIConfig{Provider: config.ProviderArk})
	require.NoError(t, err)
	assert.False(t, svc.Enabled())

	got := svc.Complete(context.Background(), "s1", sampleTranscript())
	assert.Equal(t, Completion{Content: chat.FallbackReply, Fallback: true}, got)
}

func TestCompleteRequiresTrailingUserMessage(t *testing.T) {
	fake := &fakeChatModel{reply: "unused"}
	svc, err := NewServiceWithModel(context.Background(), fake, time.Second)
	require.NoError(t, err)

	got := svc.Complete(context.Background(), "s1", []chat.Message{chat.SystemMessage("sys")})
	assert.True(t, got.Fallback)
	assert.Nil(t, fake.received())
}

func TestNewChatModelRejectsMissingCredentials(t *testing.T) {
	_, err := NewChatModel(context.Background(), config.AIConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini"})
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestNewChatModelSelectsOpenAI(t *testing.T) {
	m, err := NewChatModel(context.Background(), config.AIConfig{
		Provider: config.ProviderOpenAI,
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIChatModel{}, m)
}

type chunkedChatModel struct {
	fakeChatModel
	chunks []string
	failAt int
}

func (c *chunkedChatModel) Stream(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	c.mu.Lock()
	c.got = input
	c.mu.Unlock()

	reader, writer := schema.Pipe[*schema.Message](len(c.chunks) + 1)
	go func() {
		defer writer.Close()
		for i, part := range c.chunks {
			if c.failAt > 0 && i == c.failAt {
				writer.Send(nil, errors.New("connection reset"))
				return
			}
			writer.Send(schema.AssistantMessage(part, nil), nil)
		}
	}()
	return reader, nil
}

func TestCompleteStreamDeliversChunks(t *testing.T) {
	fake := &chunkedChatModel{chunks: []string{"Rajdhani ", "", "runs ", "daily."}}
	svc, err := NewServiceWithModel(context.Background(), fake, time.Second)
	require.NoError(t, err)

	var got []string
	completion := svc.CompleteStream(context.Background(), "s1", sampleTranscript(), func(chunk string) {
		got = append(got, chunk)
	})

	assert.Equal(t, Completion{Content: "Rajdhani runs daily."}, completion)
	assert.Equal(t, []string{"Rajdhani ", "runs ", "daily."}, got)
	require.Len(t, fake.received(), 5)
}

func TestCompleteStreamFallsBackMidStream(t *testing.T) {
	fake := &chunkedChatModel{chunks: []string{"partial ", "never"}, failAt: 1}
	svc, err := NewServiceWithModel(context.Background(), fake, time.Second)
	require.NoError(t, err)

	var got []string
	completion := svc.CompleteStream(context.Background(), "s1", sampleTranscript(), func(chunk string) {
		got = append(got, chunk)
	})

	assert.Equal(t, Completion{Content: chat.FallbackReply, Fallback: true}, completion)
	assert.Equal(t, []string{"partial "}, got)
}

func TestCompleteStreamWithoutModel(t *testing.T) {
	svc, err := NewServiceWithModel(context.Background(), nil, 0)
	require.NoError(t, err)

	called := false
	completion := svc.CompleteStream(context.Background(), "s1", sampleTranscript(), func(string) { called = true })
	assert.True(t, completion.Fallback)
	assert.False(t, called)
}
