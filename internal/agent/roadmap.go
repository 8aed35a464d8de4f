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

const (
	requestedPhases        = 3
	minRequestedMilestones = 3
	maxRequestedMilestones = 5
)

var _ Agent[entity.AnalysisResult, entity.RoadmapResult] = &RoadmapCreator{}

// RoadmapCreator turns a profile analysis into a phased career roadmap.
type RoadmapCreator struct {
	generator Generator
}

func NewRoadmapCreator(generator Generator) *RoadmapCreator {
	return &RoadmapCreator{generator: generator}
}

func (a *RoadmapCreator) Execute(ctx context.Context, input entity.AnalysisResult) (entity.RoadmapResult, error) {
	ctx = logger.WithAction(ctx, "RoadmapCreator")
	ctxzap.Info(ctx, "creating roadmap", zap.Int("suggestion_count", len(input.Suggestions)))

	prompt := roadmapPrompt(input)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return entity.RoadmapResult{}, fmt.Errorf("create roadmap: %w", err)
	}

	result, err := contract.Validate[entity.RoadmapResult](raw, roadmapContract)
	if err != nil {
		rejectResponse(ctx, a.generator, prompt, raw, err)
		return entity.RoadmapResult{}, fmt.Errorf("create roadmap: %w", err)
	}

	warnOnGranularity(ctx, result)
	ctxzap.Info(ctx, "roadmap created", zap.Int("phase_count", len(result.Phases)))

	return result, nil
}

// warnOnGranularity logs, without failing, when the model ignored the requested shape.
func warnOnGranularity(ctx context.Context, result entity.RoadmapResult) {
	if len(result.Phases) != requestedPhases {
		ctxzap.Warn(ctx, "roadmap phase count differs from request",
			zap.Int("phase_count", len(result.Phases)),
			zap.Int("requested", requestedPhases),
		)
	}
	for i, phase := range result.Phases {
		if n := len(phase.Milestones); n < minRequestedMilestones || n > maxRequestedMilestones {
			ctxzap.Warn(ctx, "roadmap milestone count outside requested range",
				zap.Int("phase", i),
				zap.Int("milestone_count", n),
			)
		}
	}
}

func roadmapPrompt(input entity.AnalysisResult) string {
	return fmt.Sprintf(`Based on the following professional profile analysis, create a personalized 3-phase career roadmap (Months 0-3, 3-6, and 6-12) for a student or new graduate.

The analysis identified the following strengths and weaknesses:
Analysis: "%s"
Suggestions for improvement: "%s"

Generate a roadmap with clear, actionable milestones for each phase (3-5 milestones per phase). Focus on free or low-cost resources, such as specific documentation to read, types of personal projects to build, key open-source libraries to explore, or concepts to master.

Respond ONLY with a valid JSON object in the following format:
{
  "roadmap": [
    {
      "title": "Months 0-3: Phase Title",
      "milestones": ["Milestone 1...", "Milestone 2...", "Milestone 3..."]
    },
    {
      "title": "Months 3-6: Phase Title",
      "milestones": ["Milestone 1...", "Milestone 2...", "Milestone 3..."]
    },
    {
      "title": "Months 6-12: Phase Title",
      "milestones": ["Milestone 1...", "Milestone 2...", "Milestone 3..."]
    }
  ]
}
`, input.Analysis, strings.Join(input.Suggestions, ", "))
}
