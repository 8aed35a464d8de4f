package handlers

import (
	"context"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/formatter"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the subset of *tgbotapi.BotAPI the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

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
	ValidateRecommendResources(req *entity.RecommendResourcesRequest) error
}

type FileDownloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

type FormatterFactory interface {
	Create(format entity.ExportFormat) (formatter.Formatter, error)
}
