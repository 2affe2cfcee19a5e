// File path: internal/llm/llm.go
package llm

import (
	"context"
	"os"
	"strings"

	"github.com/venturelabs/venturelens/internal/common"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider abstracts the chat backend. ChatStream delivers content deltas
// through the callback until the stream ends or ctx is cancelled; a
// callback error aborts consumption without corrupting anything upstream.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	ChatStream(ctx context.Context, messages []Message, onDelta func(delta string) error) error
	Name() string
}

// NewProvider selects the OpenAI provider when an API key is configured
// and otherwise falls back to the deterministic local provider, so the
// whole wizard stays exercisable offline.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey != "" {
		logger.Info("llm: openai provider selected")
		return NewOpenAIProvider(apiKey)
	}
	logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
	return NewLocalProvider()
}
