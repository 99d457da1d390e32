package chat

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry, sent to the completion service in order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
