// Package render holds the bot's user-facing texts.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/career-agent/internal/entity"
)

// Telegram rejects messages longer than this many characters.
const maxMessageLength = 4096

const (
	MsgWelcome = `👋 Hi! I'm your career coach.

I can:
• Analyze your profile and suggest where to grow
• Turn the analysis into a step-by-step roadmap
• Find learning resources for any milestone
• Help you when you get stuck`

	MsgAskProfile = `📋 Send me your profile as text: experience, skills, education, goals. A pasted CV or LinkedIn summary works well. You can also upload your resume as a PDF or DOCX file.`

	MsgHelp = `Commands:
/start - start over with a new profile
/cancel - forget the current session
/help - show this message`

	MsgReadingResume   = `📄 Reading your resume...`
	MsgAnalyzing       = `⏳ Analyzing your profile...`
	MsgBuildingRoadmap = `⏳ Building your roadmap...`
	MsgSearching       = `🔎 Looking for resources on "%s"...`

	MsgRoadmapIntro = `Use the buttons below to get resources for a milestone, ask for help when you're stuck, or download the roadmap.`

	MsgChatStarted = `💬 Let's work on "%s".

Tell me what you're stuck on. Press "Back to roadmap" when you're done.`

	MsgChatEnded       = `✅ Back to your roadmap.`
	MsgDocumentCaption = `📄 Your roadmap`
	MsgCancelled       = `👋 Session cleared. Send /start to begin again.`
	MsgUseButtons      = `👆 Use the buttons above, or send /start to analyze a new profile.`

	ErrGeneric            = `❌ Something went wrong. Try again or send /start`
	ErrInvalidInput       = `❌ %s`
	ErrNoResources        = `🤷 I couldn't find any resources for this milestone. Try another one.`
	ErrBadGeneration      = `❌ The answer I got back was unusable. Please try again.`
	ErrServiceUnavailable = `❌ The service is temporarily unavailable. Try again in a few minutes.`
	ErrTimeout            = `❌ That took too long. Please try again.`
	ErrNoRoadmap          = `❌ There is no roadmap yet. Send /start to begin.`
	ErrUnknownMilestone   = `❌ That milestone is no longer in your roadmap.`
	ErrNoAnalysis         = `❌ Send me your profile first. Use /start to begin.`
	ErrTextOnly           = `❌ I can only read text messages and resume files.`
	ErrUnsupportedFile    = `❌ I couldn't read that file. Send your resume as a PDF, DOCX or plain text file, or paste the text.`
	ErrFileTooLarge       = `❌ That file is too large. Send a smaller resume or paste the text.`
)

func RenderAnalysis(result entity.AnalysisResult) string {
	var sb strings.Builder
	sb.WriteString("🧭 Profile analysis\n\n")
	sb.WriteString(result.Analysis)
	sb.WriteString("\n\n💡 Suggestions\n")
	for i, s := range result.Suggestions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
	}
	return Truncate(sb.String())
}

// RenderRoadmap numbers milestones as "phase.milestone" to match the keyboard labels.
func RenderRoadmap(roadmap entity.RoadmapResult) string {
	var sb strings.Builder
	sb.WriteString("🗺 Your roadmap\n")
	for p, phase := range roadmap.Phases {
		fmt.Fprintf(&sb, "\n%d. %s\n", p+1, phase.Title)
		for m, milestone := range phase.Milestones {
			fmt.Fprintf(&sb, "   %d.%d %s\n", p+1, m+1, milestone)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(MsgRoadmapIntro)
	return Truncate(sb.String())
}

func RenderResources(milestone string, set entity.ResourceSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 Resources for \"%s\"\n", milestone)
	for i, r := range set.Resources {
		fmt.Fprintf(&sb, "\n%d. %s [%s]\n%s\n%s\n", i+1, r.Title, r.Type, r.URL, r.Description)
	}
	return Truncate(sb.String())
}

func RenderChatStarted(milestone string) string {
	return fmt.Sprintf(MsgChatStarted, milestone)
}

func RenderSearching(milestone string) string {
	return fmt.Sprintf(MsgSearching, milestone)
}

// Truncate cuts text to fit in one Telegram message.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxMessageLength {
		return text
	}
	return string(runes[:maxMessageLength-1]) + "…"
}

// ClassifyError maps an agent or validation error to a message for the user.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ErrGeneric
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField):
		return fmt.Sprintf(ErrInvalidInput, err.Error())
	case errors.Is(err, entity.ErrUnsupportedDocument):
		return ErrUnsupportedFile
	case errors.Is(err, entity.ErrDocumentTooLarge):
		return ErrFileTooLarge
	case errors.Is(err, entity.ErrNoSearchResults):
		return ErrNoResources
	case errors.Is(err, entity.ErrMalformedResponse):
		return ErrBadGeneration
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrTimeout
	case errors.Is(err, entity.ErrGeneration):
		return ErrServiceUnavailable
	default:
		return ErrGeneric
	}
}
