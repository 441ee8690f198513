package ai

import (
	"context"
	"fmt"
	"time"

	"study-notes-backend/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*NoopAIAdapter)(nil)

// NoopAIAdapter is the dev-mode provider. It returns canned notes after a
// short delay so the full job lifecycle can be exercised without API keys.
type NoopAIAdapter struct{}

func NewNoopAIAdapter() *NoopAIAdapter { return &NoopAIAdapter{} }

func (a *NoopAIAdapter) ListModels(context.Context) ([]string, error) {
	return []string{"noop-model"}, nil
}

func (a *NoopAIAdapter) CountTokens(_ context.Context, _ string, messages []adapter.Message) (int, error) {
	n := 0
	for _, m := range messages {
		n += len(m.Content) / 4
	}
	return n, nil
}

func (a *NoopAIAdapter) Generate(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	text, _, err := a.GenerateWithUsage(ctx, model, messages)
	return text, err
}

func (a *NoopAIAdapter) GenerateWithUsage(ctx context.Context, _ string, messages []adapter.Message) (string, adapter.Usage, error) {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return "", adapter.Usage{}, ctx.Err()
	}
	prompt := ""
	if len(messages) > 0 {
		prompt = messages[len(messages)-1].Content
	}
	in, _ := a.CountTokens(ctx, "", messages)
	text := fmt.Sprintf("# Notes\n\nGenerated placeholder notes for: %s\n", prompt)
	return text, adapter.Usage{PromptTokens: in, CompletionTokens: len(text) / 4, TotalTokens: in + len(text)/4}, nil
}
