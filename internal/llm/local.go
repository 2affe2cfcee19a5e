// File path: internal/llm/local.go
package llm

import (
	"context"
	"fmt"
	"strings"
)

// LocalProvider is the offline fallback: deterministic canned responses so
// the wizard and its tests run without any API key.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider { return &LocalProvider{} }

func (l *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	last := messages[len(messages)-1]
	return fmt.Sprintf(
		"Offline mode: no model is configured. You asked: %q. "+
			"Set OPENAI_API_KEY to get real answers; the wizard itself works fully offline.",
		trim(last.Content, 160),
	), nil
}

func (l *LocalProvider) ChatStream(ctx context.Context, messages []Message, onDelta func(string) error) error {
	answer, err := l.Chat(ctx, messages)
	if err != nil {
		return err
	}
	for _, word := range strings.SplitAfter(answer, " ") {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onDelta(word); err != nil {
			return err
		}
	}
	return nil
}

func (l *LocalProvider) Name() string { return "local" }

func trim(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
