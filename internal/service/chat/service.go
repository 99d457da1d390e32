package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sharma-alok1/RailMate/backend/internal/model/chat"
)

// DefaultHistoryLimit caps the stored transcript, system prompt included.
const DefaultHistoryLimit = 20

var ErrSessionNotFound = errors.New("session not found")

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHistoryLimit overrides DefaultHistoryLimit. Values below 2 are ignored.
func WithHistoryLimit(limit int) Option {
	return func(s *Service) {
		if limit >= 2 {
			s.limit = limit
		}
	}
}

// WithIDGenerator replaces uuid.NewString for session identifiers.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithSystemPrompt fixes the system prompt instead of dating it at construction.
func WithSystemPrompt(prompt string) Option {
	return func(s *Service) { s.systemPrompt = prompt }
}

// Service owns every conversation transcript, keyed by session id.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session

	now          func() time.Time
	newID        func() string
	systemPrompt string
	limit        int
}

// NewService bootstraps the in-memory session store.
func NewService(opts ...Option) *Service {
	s := &Service{
		sessions: make(map[string]*chat.Session),
		now:      time.Now,
		newID:    uuid.NewString,
		limit:    DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.systemPrompt == "" {
		s.systemPrompt = chat.SystemPrompt(s.now())
	}
	return s
}

// SystemPrompt returns the prompt placed at the head of every transcript.
func (s *Service) SystemPrompt() string {
	return s.systemPrompt
}

// Now reads the store clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Initialize creates a session holding the system prompt and greeting and
// returns its id.
func (s *Service) Initialize(_ context.Context) string {
	now := s.now()
	session := &chat.Session{
		ID:           s.newID(),
		Messages:     s.openingMessages(),
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session.ID
}

// Append records a user turn and returns a copy of the full transcript. An
// unknown id gets a new session under that id, seeded with the system prompt
// only.
func (s *Service) Append(_ context.Context, sessionID, content string) []chat.Message {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		session = &chat.Session{
			ID:        sessionID,
			Messages:  []chat.Message{chat.SystemMessage(s.systemPrompt)},
			CreatedAt: now,
		}
		s.sessions[sessionID] = session
	}

	session.Messages = append(session.Messages, chat.UserMessage(content))
	session.LastActivity = now

	return append([]chat.Message(nil), session.Messages...)
}

// AppendAssistant records an assistant turn, then trims the transcript to
// the history limit keeping the first message.
func (s *Service) AppendAssistant(_ context.Context, sessionID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	session.Messages = trim(append(session.Messages, chat.AssistantMessage(content)), s.limit)
	return nil
}

// History returns the transcript without system messages.
func (s *Service) History(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	out := make([]chat.Message, 0, len(session.Messages))
	for _, msg := range session.Messages {
		if msg.Role != chat.RoleSystem {
			out = append(out, msg)
		}
	}
	return out, nil
}

// GetSession retrieves a copy of a session.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Reset puts an existing session back to system prompt plus greeting. Unknown
// ids are ignored.
func (s *Service) Reset(_ context.Context, sessionID string) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		session.Messages = s.openingMessages()
		session.LastActivity = now
	}
}

// SweepExpired drops sessions idle for longer than maxIdle at now and
// reports how many were removed.
func (s *Service) SweepExpired(now time.Time, maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.LastActivity) > maxIdle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) openingMessages() []chat.Message {
	return []chat.Message{
		chat.SystemMessage(s.systemPrompt),
		chat.AssistantMessage(chat.Greeting),
	}
}

func trim(messages []chat.Message, limit int) []chat.Message {
	if len(messages) <= limit {
		return messages
	}
	out := make([]chat.Message, 0, limit)
	out = append(out, messages[0])
	return append(out, messages[len(messages)-(limit-1):]...)
}
