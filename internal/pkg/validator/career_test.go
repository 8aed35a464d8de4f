package validator

import (
	"errors"
	"testing"

	"github.com/futig/career-agent/internal/entity"
)

func TestValidateAnalyzeProfile(t *testing.T) {
	v := NewInputValidator()

	tests := []struct {
		name string
		text string
		want error
	}{
		{"valid", "Backend developer, three years of Go.", nil},
		{"empty", "   ", entity.ErrMissingField},
		{"too short", "Go dev", entity.ErrInvalidParameter},
		{"exactly minimum", "12345678901234567890", nil},
		{"multibyte counted as characters", "Разработчик на Go!!!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateAnalyzeProfile(&entity.AnalyzeProfileRequest{ProfileText: tt.text})
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateCreateRoadmap(t *testing.T) {
	v := NewInputValidator()

	if err := v.ValidateCreateRoadmap(&entity.CreateRoadmapRequest{Analysis: "X", Suggestions: []string{"A"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.ValidateCreateRoadmap(&entity.CreateRoadmapRequest{Suggestions: []string{"A"}}); !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected missing analysis, got %v", err)
	}
	if err := v.ValidateCreateRoadmap(&entity.CreateRoadmapRequest{Analysis: "X"}); !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected missing suggestions, got %v", err)
	}
	if err := v.ValidateCreateRoadmap(&entity.CreateRoadmapRequest{Analysis: "X", Suggestions: []string{"A", " "}}); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Fatalf("expected invalid suggestion, got %v", err)
	}
}

func TestValidateRecommendResources(t *testing.T) {
	v := NewInputValidator()

	if err := v.ValidateRecommendResources(&entity.RecommendResourcesRequest{Milestone: "Learn Go concurrency"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.ValidateRecommendResources(&entity.RecommendResourcesRequest{Milestone: "Go"}); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Fatalf("expected short milestone error, got %v", err)
	}
	if err := v.ValidateRecommendResources(&entity.RecommendResourcesRequest{}); !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected missing milestone, got %v", err)
	}
}

func TestValidateTroubleshoot(t *testing.T) {
	v := NewInputValidator()
	valid := func() *entity.TroubleshootRequest {
		return &entity.TroubleshootRequest{
			Milestone: "Build a REST API",
			Question:  "Where do I start?",
			History: []entity.ChatTurnDTO{
				{Role: "user", Content: "a"},
				{Role: "model", Content: "b"},
			},
		}
	}

	if err := v.ValidateTroubleshoot(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *entity.TroubleshootRequest)
		want   error
	}{
		{"empty question", func(r *entity.TroubleshootRequest) { r.Question = "" }, entity.ErrMissingField},
		{"short milestone", func(r *entity.TroubleshootRequest) { r.Milestone = "API" }, entity.ErrInvalidParameter},
		{"unknown role", func(r *entity.TroubleshootRequest) { r.History[1].Role = "assistant" }, entity.ErrInvalidParameter},
		{"empty turn", func(r *entity.TroubleshootRequest) { r.History[0].Content = "" }, entity.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			if err := v.ValidateTroubleshoot(req); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateExportRoadmap(t *testing.T) {
	v := NewInputValidator()
	roadmap := entity.RoadmapResult{Phases: []entity.Phase{{Title: "Months 0-3", Milestones: []string{"Learn Go"}}}}

	if err := v.ValidateExportRoadmap(&entity.ExportRoadmapRequest{Format: entity.FormatPDF, Roadmap: roadmap}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.ValidateExportRoadmap(&entity.ExportRoadmapRequest{Format: "html", Roadmap: roadmap}); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if err := v.ValidateExportRoadmap(&entity.ExportRoadmapRequest{Format: entity.FormatMarkdown}); !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected missing roadmap, got %v", err)
	}
	untitled := entity.RoadmapResult{Phases: []entity.Phase{{Milestones: []string{"Learn Go"}}}}
	if err := v.ValidateExportRoadmap(&entity.ExportRoadmapRequest{Format: entity.FormatMarkdown, Roadmap: untitled}); !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected missing phase title, got %v", err)
	}
}
