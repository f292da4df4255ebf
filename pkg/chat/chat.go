package chat

const (
	ChatRoleUser   = "user"
	ChatRoleAgent  = "assistant"
	ChatRoleSystem = "system"
)

// ChatMessage is a single message in an LLM conversation. The shape
// follows the Ollama chat API and is accepted by every provider.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the raw text returned by an LLM provider.
type ChatResponse struct {
	Message string `json:"message"`
}
