package agent

import (
	"context"
	"fmt"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var _ Agent[entity.TroubleshootInput, entity.TroubleshootOutput] = &Troubleshooter{}

// Troubleshooter coaches a user who is stuck on a milestone. Replies are free text.
type Troubleshooter struct {
	generator Generator
}

func NewTroubleshooter(generator Generator) *Troubleshooter {
	return &Troubleshooter{generator: generator}
}

// Execute sends the question as the current message with the history, untouched, as context.
func (a *Troubleshooter) Execute(ctx context.Context, input entity.TroubleshootInput) (entity.TroubleshootOutput, error) {
	ctx = logger.WithAction(ctx, "Troubleshooter")
	ctxzap.Info(ctx, "coaching on milestone", zap.Int("history_length", len(input.History)))

	reply, err := a.generator.GenerateChatResponse(ctx, coachingPrompt(input.Milestone, input.Question), input.History)
	if err != nil {
		return entity.TroubleshootOutput{}, fmt.Errorf("troubleshoot: %w", err)
	}

	return entity.TroubleshootOutput{Response: reply}, nil
}

// Converse runs one exchange on session. The user turn is appended whether or
// not generation succeeds; the model turn only on success.
func (a *Troubleshooter) Converse(ctx context.Context, session *entity.ChatSession, question string) (entity.ChatTurn, error) {
	ctx = logger.AddFields(ctx, zap.String("chat_session_id", session.ID))

	history := session.History()
	session.Append(entity.ChatTurn{Role: entity.ChatRoleUser, Content: question})

	out, err := a.Execute(ctx, entity.TroubleshootInput{
		Milestone: session.Milestone,
		History:   history,
		Question:  question,
	})
	if err != nil {
		return entity.ChatTurn{}, err
	}

	reply := entity.ChatTurn{Role: entity.ChatRoleModel, Content: out.Response}
	session.Append(reply)

	return reply, nil
}

func coachingPrompt(milestone, question string) string {
	return fmt.Sprintf(`CONTEXT:
You are a friendly and encouraging career coach for a new software developer.
The user is feeling stuck on a specific milestone from their career roadmap.
The milestone is: "%s"

INSTRUCTIONS:
Your goal is NOT to give the user the answer directly. Instead:
1. Acknowledge their question and validate their feelings.
2. Ask a clarifying question to better understand their specific problem.
3. Suggest a very small, concrete first step they could take.
4. Keep your response concise (2-4 sentences) and supportive.
5. End your response with a question to encourage them to reply.

CONVERSATION:
User's latest question: "%s"
`, milestone, question)
}
