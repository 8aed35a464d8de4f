package search

import (
	"context"
	"net/url"

	"github.com/futig/career-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns a fixed set of well-known learning sites.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Search(ctx context.Context, query string) []entity.SearchResult {
	ctxzap.Info(ctx, "[MOCK] searching the web", zap.String("query", query))

	q := url.QueryEscape(query)
	return []entity.SearchResult{
		{
			Title:   "Documentation - The Go Programming Language",
			Link:    "https://go.dev/doc/",
			Snippet: "Official documentation, tutorials and guides for Go.",
		},
		{
			Title:   "freeCodeCamp - Search",
			Link:    "https://www.freecodecamp.org/news/search/?query=" + q,
			Snippet: "Free articles and interactive lessons on programming topics.",
		},
		{
			Title:   "MDN Web Docs",
			Link:    "https://developer.mozilla.org/en-US/search?q=" + q,
			Snippet: "Resources for developers, by developers.",
		},
		{
			Title:   "YouTube - Search",
			Link:    "https://www.youtube.com/results?search_query=" + q,
			Snippet: "Video tutorials and conference talks.",
		},
		{
			Title:   "Coursera - Free Courses",
			Link:    "https://www.coursera.org/search?query=" + q + "&productDifficultyLevel=Beginner",
			Snippet: "Free and low-cost university courses.",
		},
	}
}
