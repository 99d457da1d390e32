package chat

import "time"

// Session captures a transient anonymous conversation. Messages[0] is always
// the system prompt.
type Session struct {
	ID           string    `json:"id"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// Clone returns a copy whose message slice is not shared with s.
func (s Session) Clone() Session {
	s.Messages = append([]Message(nil), s.Messages...)
	return s
}
