// ABOUTME: Message represents a single role-tagged conversation entry
// ABOUTME: Core data structure shared by the conversation store and generation client
package models

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one (role, content) pair in a conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
