package adapter

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Usage for a single generation call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// AIServiceAdapter is the port for LLM-backed notes generation.
type AIServiceAdapter interface {
	ListModels(ctx context.Context) ([]string, error)

	// CountTokens must return prompt tokens for the provided messages
	// (provider-specific counting; best-effort when exact isn't available).
	CountTokens(ctx context.Context, model string, messages []Message) (int, error)

	// Generate returns only the assistant text.
	Generate(ctx context.Context, model string, messages []Message) (string, error)

	// GenerateWithUsage returns assistant text + usage as reported by the provider.
	GenerateWithUsage(ctx context.Context, model string, messages []Message) (string, Usage, error)
}
