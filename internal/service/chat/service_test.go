package chat_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/sharma-alok1/RailMate/backend/internal/model/chat"
	chat "github.com/sharma-alok1/RailMate/backend/internal/service/chat"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

const testPrompt = "You are a test assistant."

func newService(opts ...chat.Option) *chat.Service {
	return chat.NewService(append([]chat.Option{chat.WithSystemPrompt(testPrompt)}, opts...)...)
}

func TestInitializeSeedsPromptAndGreeting(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	id := svc.Initialize(ctx)
	require.NotEmpty(t, id)

	session, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []model.Message{
		model.SystemMessage(testPrompt),
		model.AssistantMessage(model.Greeting),
	}, session.Messages)
	assert.Equal(t, session.CreatedAt, session.LastActivity)

	other := svc.Initialize(ctx)
	assert.NotEqual(t, id, other)
}

func TestDefaultSystemPromptIsDated(t *testing.T) {
	clock := newFakeClock()
	svc := chat.NewService(chat.WithClock(clock.Now))

	assert.Equal(t, model.SystemPrompt(clock.Now()), svc.SystemPrompt())
}

func TestAppendUnknownSessionCreatesIt(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	transcript := svc.Append(ctx, "client-chosen-id", "Trains to Mumbai?")
	assert.Equal(t, []model.Message{
		model.SystemMessage(testPrompt),
		model.UserMessage("Trains to Mumbai?"),
	}, transcript)

	history, err := svc.History(ctx, "client-chosen-id")
	require.NoError(t, err)
	assert.Equal(t, []model.Message{model.UserMessage("Trains to Mumbai?")}, history)
}

func TestAppendUpdatesLastActivity(t *testing.T) {
	clock := newFakeClock()
	svc := newService(chat.WithClock(clock.Now))
	ctx := context.Background()

	id := svc.Initialize(ctx)
	clock.Advance(time.Minute)
	svc.Append(ctx, id, "hello")

	session, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), session.LastActivity)
	assert.Equal(t, clock.Now().Add(-time.Minute), session.CreatedAt)
}

func TestAppendReturnsDetachedTranscript(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	id := svc.Initialize(ctx)
	transcript := svc.Append(ctx, id, "hello")
	transcript[0].Content = "tampered"

	session, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testPrompt, session.Messages[0].Content)
}

func TestHistoryUnknownSession(t *testing.T) {
	svc := newService()

	_, err := svc.History(context.Background(), "missing")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestAppendAssistantUnknownSession(t *testing.T) {
	svc := newService()

	err := svc.AppendAssistant(context.Background(), "missing", "reply")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestTrimmingKeepsSystemPrompt(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	id := svc.Initialize(ctx)

	for i := 0; i < 15; i++ {
		svc.Append(ctx, id, fmt.Sprintf("question %d", i))
		require.NoError(t, svc.AppendAssistant(ctx, id, fmt.Sprintf("answer %d", i)))
	}

	session, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	require.Len(t, session.Messages, chat.DefaultHistoryLimit)
	assert.Equal(t, model.SystemMessage(testPrompt), session.Messages[0])
	assert.Equal(t, model.AssistantMessage("answer 14"), session.Messages[19])
	assert.Equal(t, model.AssistantMessage("answer 5"), session.Messages[1])
}

func TestTrimmingOnlyAfterAssistantTurn(t *testing.T) {
	svc := newService(chat.WithHistoryLimit(4))
	ctx := context.Background()
	id := svc.Initialize(ctx)

	svc.Append(ctx, id, "one")
	svc.Append(ctx, id, "two")
	svc.Append(ctx, id, "three")

	session, _ := svc.GetSession(ctx, id)
	assert.Len(t, session.Messages, 5)

	require.NoError(t, svc.AppendAssistant(ctx, id, "reply"))
	session, _ = svc.GetSession(ctx, id)
	assert.Equal(t, []model.Message{
		model.SystemMessage(testPrompt),
		model.UserMessage("two"),
		model.UserMessage("three"),
		model.AssistantMessage("reply"),
	}, session.Messages)
}

func TestResetIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	svc := newService(chat.WithClock(clock.Now))
	ctx := context.Background()
	id := svc.Initialize(ctx)
	svc.Append(ctx, id, "hello")
	require.NoError(t, svc.AppendAssistant(ctx, id, "hi"))

	want := []model.Message{model.SystemMessage(testPrompt), model.AssistantMessage(model.Greeting)}
	for i := 0; i < 2; i++ {
		clock.Advance(time.Second)
		svc.Reset(ctx, id)

		session, err := svc.GetSession(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, session.Messages)
		assert.Equal(t, clock.Now(), session.LastActivity)
	}
}

func TestResetUnknownSessionIsNoop(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	svc.Reset(ctx, "missing")

	_, err := svc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
	assert.Zero(t, svc.Len())
}

func TestSweepExpired(t *testing.T) {
	clock := newFakeClock()
	svc := newService(chat.WithClock(clock.Now))
	ctx := context.Background()

	stale := svc.Initialize(ctx)
	clock.Advance(20 * time.Hour)
	fresh := svc.Initialize(ctx)
	clock.Advance(5 * time.Hour)

	removed := svc.SweepExpired(clock.Now(), 24*time.Hour)
	assert.Equal(t, 1, removed)

	_, err := svc.GetSession(ctx, stale)
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
	_, err = svc.GetSession(ctx, fresh)
	assert.NoError(t, err)
}

func TestConcurrentAccessAcrossSessions(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", n)
			for j := 0; j < 30; j++ {
				svc.Append(ctx, id, "ping")
				_ = svc.AppendAssistant(ctx, id, "pong")
				_, _ = svc.History(ctx, id)
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 30; j++ {
			svc.SweepExpired(time.Now(), time.Hour)
		}
	}()
	wg.Wait()

	assert.Equal(t, 20, svc.Len())
	for i := 0; i < 20; i++ {
		session, err := svc.GetSession(ctx, fmt.Sprintf("session-%d", i))
		require.NoError(t, err)
		assert.Len(t, session.Messages, chat.DefaultHistoryLimit)
		assert.Equal(t, model.RoleSystem, session.Messages[0].Role)
	}
}
