package career

import (
	"context"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/formatter"
)

type ProfileAnalyzer interface {
	Execute(ctx context.Context, input entity.ProfileAnalysisInput) (entity.AnalysisResult, error)
}

type RoadmapCreator interface {
	Execute(ctx context.Context, input entity.AnalysisResult) (entity.RoadmapResult, error)
}

type ResourceRecommender interface {
	Execute(ctx context.Context, input entity.ResourceInput) (entity.ResourceSet, error)
}

type Troubleshooter interface {
	Converse(ctx context.Context, session *entity.ChatSession, question string) (entity.ChatTurn, error)
}

type InputValidator interface {
	ValidateAnalyzeProfile(req *entity.AnalyzeProfileRequest) error
	ValidateCreateRoadmap(req *entity.CreateRoadmapRequest) error
	ValidateRecommendResources(req *entity.RecommendResourcesRequest) error
	ValidateTroubleshoot(req *entity.TroubleshootRequest) error
	ValidateExportRoadmap(req *entity.ExportRoadmapRequest) error
}

type FormatterFactory interface {
	Create(format entity.ExportFormat) (formatter.Formatter, error)
}
