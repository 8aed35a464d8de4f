package agent

import (
	"context"

	"github.com/futig/career-agent/internal/entity"
)

// Agent is one request capability: build a prompt, generate, and return a typed result.
type Agent[I, O any] interface {
	Execute(ctx context.Context, input I) (O, error)
}

// Generator is the shared generation client every agent is constructed with.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateChatResponse(ctx context.Context, prompt string, history []entity.ChatTurn) (string, error)
	Forget(ctx context.Context, prompt string)
}

// Searcher returns ordered web results; an empty list is a normal outcome.
type Searcher interface {
	Search(ctx context.Context, query string) []entity.SearchResult
}
