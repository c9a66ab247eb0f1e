package domain

// Chat roles accepted on the wire and forwarded to backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is the provider-agnostic chat message shape used by the handler
// and backend integrations.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IsConversational reports whether the message belongs to the visible
// conversation, as opposed to instructions injected by a client.
func (m ChatMessage) IsConversational() bool {
	return m.Role == RoleUser || m.Role == RoleAssistant
}

// ChatResult is the reply produced for a chat request. Reply is never empty.
type ChatResult struct {
	Reply string
}
