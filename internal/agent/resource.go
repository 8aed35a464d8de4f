package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/contract"
	"github.com/futig/career-agent/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const ruleGrounded = "grounded"

var _ Agent[entity.ResourceInput, entity.ResourceSet] = &ResourceRecommender{}

// ResourceRecommender picks learning resources for a milestone from live search results.
type ResourceRecommender struct {
	generator Generator
	searcher  Searcher
}

func NewResourceRecommender(generator Generator, searcher Searcher) *ResourceRecommender {
	return &ResourceRecommender{
		generator: generator,
		searcher:  searcher,
	}
}

func (a *ResourceRecommender) Execute(ctx context.Context, input entity.ResourceInput) (entity.ResourceSet, error) {
	ctx = logger.WithAction(ctx, "ResourceRecommender")
	ctxzap.Info(ctx, "recommending resources", zap.String("milestone", input.Milestone))

	results := a.searcher.Search(ctx, input.Milestone)
	if len(results) == 0 {
		return entity.ResourceSet{}, fmt.Errorf("recommend resources: %w", &entity.NoResultsError{Query: input.Milestone})
	}

	prompt := resourcePrompt(input.Milestone, results)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return entity.ResourceSet{}, fmt.Errorf("recommend resources: %w", err)
	}

	set, err := contract.Validate[entity.ResourceSet](raw, resourceContract)
	if err == nil {
		err = checkGrounded(set, results)
	}
	if err != nil {
		rejectResponse(ctx, a.generator, prompt, raw, err)
		return entity.ResourceSet{}, fmt.Errorf("recommend resources: %w", err)
	}

	ctxzap.Info(ctx, "resources recommended", zap.Int("candidate_count", len(results)))

	return set, nil
}

// checkGrounded rejects any resource whose URL was not among the search results.
func checkGrounded(set entity.ResourceSet, results []entity.SearchResult) error {
	offered := make(map[string]struct{}, len(results))
	for _, r := range results {
		offered[strings.TrimSpace(r.Link)] = struct{}{}
	}

	for i, res := range set.Resources {
		if _, ok := offered[strings.TrimSpace(res.URL)]; !ok {
			return &entity.ValidationError{
				Contract: resourceContract.Name,
				Field:    fmt.Sprintf("resources[%d].url", i),
				Rule:     ruleGrounded,
				Detail:   fmt.Sprintf("%q is not one of the supplied search results", res.URL),
			}
		}
	}
	return nil
}

func resourcePrompt(milestone string, results []entity.SearchResult) string {
	entries := make([]string, 0, len(results))
	for i, r := range results {
		entries = append(entries, fmt.Sprintf("Result %d:\nTitle: %s\nURL: %s\nSnippet: %s", i+1, r.Title, r.Link, r.Snippet))
	}

	types := make([]string, 0, len(entity.ResourceTypes))
	for _, t := range entity.ResourceTypes {
		types = append(types, fmt.Sprintf("%q", string(t)))
	}

	return fmt.Sprintf(`You are an expert career advisor for software developers acting as a curator.
Based ONLY on the search results below, select the 3 best, most relevant, free-to-access resources for the following career milestone.

Milestone: "%s"

Web search results to choose from:
---
%s
---

Select exactly 3 resources from the list above. For each, provide its title, its exact URL from the results, its type, and a one-sentence description of why it helps with the milestone.

IMPORTANT: The "type" field MUST be one of these exact strings: %s. Do not use any other values.
Do not invent or alter any URLs; use only URLs that appear in the search results above.

Respond ONLY with a valid JSON object in this format:
{
  "resources": [
    { "title": "...", "url": "...", "type": "Article", "description": "..." },
    { "title": "...", "url": "...", "type": "Video", "description": "..." },
    { "title": "...", "url": "...", "type": "Documentation", "description": "..." }
  ]
}
`, milestone, strings.Join(entries, "\n\n"), strings.Join(types, ", "))
}
