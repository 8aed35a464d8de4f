package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/career-agent/internal/entity"
)

const (
	MinProfileTextLength = 20
	MinMilestoneLength   = 10
)

// Validator checks request preconditions before an agent is invoked.
type Validator struct{}

func NewInputValidator() *Validator {
	return &Validator{}
}

// ValidateAnalyzeProfile validates AnalyzeProfileRequest
func (v *Validator) ValidateAnalyzeProfile(req *entity.AnalyzeProfileRequest) error {
	if strings.TrimSpace(req.ProfileText) == "" {
		return fmt.Errorf("%w: profile_text", entity.ErrMissingField)
	}
	if n := utf8.RuneCountInString(req.ProfileText); n < MinProfileTextLength {
		return fmt.Errorf("%w: profile_text must be at least %d characters, got %d", entity.ErrInvalidParameter, MinProfileTextLength, n)
	}

	return nil
}

// ValidateCreateRoadmap validates CreateRoadmapRequest
func (v *Validator) ValidateCreateRoadmap(req *entity.CreateRoadmapRequest) error {
	if strings.TrimSpace(req.Analysis) == "" {
		return fmt.Errorf("%w: analysis", entity.ErrMissingField)
	}
	if len(req.Suggestions) == 0 {
		return fmt.Errorf("%w: suggestions", entity.ErrMissingField)
	}
	for i, s := range req.Suggestions {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: suggestions[%d] is empty", entity.ErrInvalidParameter, i)
		}
	}

	return nil
}

// ValidateRecommendResources validates RecommendResourcesRequest
func (v *Validator) ValidateRecommendResources(req *entity.RecommendResourcesRequest) error {
	return validateMilestone(req.Milestone)
}

// ValidateTroubleshoot validates TroubleshootRequest
func (v *Validator) ValidateTroubleshoot(req *entity.TroubleshootRequest) error {
	if err := validateMilestone(req.Milestone); err != nil {
		return err
	}
	if strings.TrimSpace(req.Question) == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}

	for i, turn := range req.History {
		if !entity.ChatRole(turn.Role).Valid() {
			return fmt.Errorf("%w: history[%d].role must be %q or %q, got %q",
				entity.ErrInvalidParameter, i, entity.ChatRoleUser, entity.ChatRoleModel, turn.Role)
		}
		if strings.TrimSpace(turn.Content) == "" {
			return fmt.Errorf("%w: history[%d].content", entity.ErrMissingField, i)
		}
	}

	return nil
}

// ValidateExportRoadmap validates ExportRoadmapRequest
func (v *Validator) ValidateExportRoadmap(req *entity.ExportRoadmapRequest) error {
	if !req.Format.IsValid() {
		return fmt.Errorf("%w: format must be one of %s, %s, %s, got %q",
			entity.ErrInvalidParameter, entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX, req.Format)
	}
	if len(req.Roadmap.Phases) == 0 {
		return fmt.Errorf("%w: roadmap", entity.ErrMissingField)
	}
	for i, phase := range req.Roadmap.Phases {
		if strings.TrimSpace(phase.Title) == "" {
			return fmt.Errorf("%w: roadmap[%d].title", entity.ErrMissingField, i)
		}
	}

	return nil
}

func validateMilestone(milestone string) error {
	if strings.TrimSpace(milestone) == "" {
		return fmt.Errorf("%w: milestone", entity.ErrMissingField)
	}
	if n := utf8.RuneCountInString(milestone); n < MinMilestoneLength {
		return fmt.Errorf("%w: milestone must be at least %d characters, got %d", entity.ErrInvalidParameter, MinMilestoneLength, n)
	}
	return nil
}
