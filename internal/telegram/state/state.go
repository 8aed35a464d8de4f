// Package state keeps per-user bot progress in a TTL-bounded store.
package state

import (
	"time"

	"github.com/futig/career-agent/internal/entity"
)

type Step string

const (
	// StepAwaitingProfile waits for the user's profile text.
	StepAwaitingProfile Step = "AWAITING_PROFILE"
	// StepReviewing has an analysis and possibly a roadmap; the user drives it with buttons.
	StepReviewing Step = "REVIEWING"
	// StepChatting routes free text to the coach for the selected milestone.
	StepChatting Step = "CHATTING"
)

type UserState struct {
	UserID    int64                  `json:"user_id"`
	ChatID    int64                  `json:"chat_id"`
	Step      Step                   `json:"step"`
	Analysis  *entity.AnalysisResult `json:"analysis,omitempty"`
	Roadmap   *entity.RoadmapResult  `json:"roadmap,omitempty"`
	Chat      *entity.ChatSession    `json:"chat,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func newUserState(userID, chatID int64) *UserState {
	return &UserState{
		UserID:    userID,
		ChatID:    chatID,
		Step:      StepAwaitingProfile,
		UpdatedAt: time.Now(),
	}
}

// Milestone returns the milestone at the given roadmap position.
func (s *UserState) Milestone(phase, index int) (string, bool) {
	if s.Roadmap == nil || phase < 0 || phase >= len(s.Roadmap.Phases) {
		return "", false
	}
	milestones := s.Roadmap.Phases[phase].Milestones
	if index < 0 || index >= len(milestones) {
		return "", false
	}
	return milestones[index], true
}
