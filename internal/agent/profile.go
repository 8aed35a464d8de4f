package agent

import (
	"context"
	"fmt"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/contract"
	"github.com/futig/career-agent/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var _ Agent[entity.ProfileAnalysisInput, entity.AnalysisResult] = &ProfileAnalyzer{}

// ProfileAnalyzer extracts strengths, weaknesses and suggestions from profile text.
type ProfileAnalyzer struct {
	generator Generator
}

func NewProfileAnalyzer(generator Generator) *ProfileAnalyzer {
	return &ProfileAnalyzer{generator: generator}
}

func (a *ProfileAnalyzer) Execute(ctx context.Context, input entity.ProfileAnalysisInput) (entity.AnalysisResult, error) {
	ctx = logger.WithAction(ctx, "ProfileAnalyzer")
	ctxzap.Info(ctx, "analyzing profile", zap.Int("profile_length", len(input.ProfileText)))

	prompt := analysisPrompt(input.ProfileText)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return entity.AnalysisResult{}, fmt.Errorf("analyze profile: %w", err)
	}

	result, err := contract.Validate[entity.AnalysisResult](raw, analysisContract)
	if err != nil {
		rejectResponse(ctx, a.generator, prompt, raw, err)
		return entity.AnalysisResult{}, fmt.Errorf("analyze profile: %w", err)
	}

	ctxzap.Info(ctx, "profile analyzed", zap.Int("suggestion_count", len(result.Suggestions)))

	return result, nil
}

func analysisPrompt(profileText string) string {
	return fmt.Sprintf(`Analyze the following professional profile text from a resume, LinkedIn, or GitHub.
Extract key skills, identify strengths and weaknesses, and suggest 2-3 actionable improvements.

Respond ONLY with a valid JSON object in the following format:
{
  "analysis": "A brief summary of the profile's strengths and weaknesses.",
  "suggestions": ["A concise, actionable suggestion.", "Another actionable suggestion."]
}

Profile Text:
"""
%s
"""
`, profileText)
}
