package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/futig/career-agent/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var promptURLPattern = regexp.MustCompile(`(?m)^\s*URL: (\S+)\s*$`)

// MockConnector answers with canned, contract-valid JSON chosen by the shape the prompt asks for.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	var resp any

	switch {
	case strings.Contains(prompt, `"resources"`):
		ctxzap.Info(ctx, "[MOCK] selecting resources")
		resp = m.resources(prompt)
	case strings.Contains(prompt, `"roadmap"`):
		ctxzap.Info(ctx, "[MOCK] creating roadmap")
		resp = entity.RoadmapResult{
			Phases: []entity.Phase{
				{
					Title: "Months 0-3: Foundations",
					Milestones: []string{
						"Work through the official Go tour and effective Go guide",
						"Build a small CLI tool and publish it on GitHub",
						"Write unit tests for every package in the CLI tool",
					},
				},
				{
					Title: "Months 3-6: Building Real Services",
					Milestones: []string{
						"Build a REST API backed by PostgreSQL",
						"Containerize the API with Docker",
						"Add structured logging and configuration from environment",
					},
				},
				{
					Title: "Months 6-12: Growing in Public",
					Milestones: []string{
						"Contribute a fix to an open-source Go library",
						"Deploy a side project to a free cloud tier",
						"Write a blog post about a problem you solved",
					},
				},
			},
		}
	default:
		ctxzap.Info(ctx, "[MOCK] analyzing profile")
		resp = entity.AnalysisResult{
			Analysis: "Solid programming fundamentals and coursework, but few shipped projects and no measurable outcomes on the resume.",
			Suggestions: []string{
				"Add two portfolio projects with live demos and READMEs.",
				"Quantify achievements with numbers such as users or latency.",
				"List the specific technologies used in each role.",
			},
		}
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("marshal mock response: %w", err)
	}

	return string(raw), nil
}

// resources picks the first URLs offered in the grounding prompt so the result stays grounded.
func (m *MockConnector) resources(prompt string) entity.ResourceSet {
	var urls []string
	for _, match := range promptURLPattern.FindAllStringSubmatch(prompt, -1) {
		urls = append(urls, match[1])
	}

	set := entity.ResourceSet{}
	for i := 0; i < entity.ResourceSetSize && len(urls) > 0; i++ {
		link := urls[i%len(urls)]
		set.Resources = append(set.Resources, entity.Resource{
			Title:       fmt.Sprintf("Recommended resource %d", i+1),
			URL:         link,
			Type:        entity.ResourceTypes[i%len(entity.ResourceTypes)],
			Description: "Covers the core concepts needed for this milestone.",
		})
	}

	return set
}

func (m *MockConnector) GenerateChat(ctx context.Context, prompt string, history []entity.ChatTurn) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating chat reply", zap.Int("history_length", len(history)))

	return "It is completely normal to feel stuck here. What have you tried so far? " +
		"As a first step, spend fifteen minutes writing down the exact point where you get lost. " +
		"Which part feels the most confusing right now?", nil
}
