package handlers

import (
	"context"
	"fmt"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/resume"
	"github.com/futig/career-agent/internal/telegram/render"
	"github.com/futig/career-agent/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ProfileHandler analyzes the profile the user sends as text or as a resume file.
type ProfileHandler struct {
	BaseHandler
}

func NewProfileHandler(deps Deps) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: BaseHandler{Deps: deps, stateName: string(state.StepAwaitingProfile)},
	}
}

func (h *ProfileHandler) Handle(ctx context.Context, msg *Message, st *state.UserState) error {
	text := msg.Text
	if msg.Document != nil {
		h.sendMessage(msg.ChatID, render.MsgReadingResume, nil)
		extracted, err := h.readResume(ctx, msg.Document)
		if err != nil {
			h.HandleError(ctx, msg.ChatID, err)
			return nil
		}
		text = extracted
	}

	req := entity.AnalyzeProfileRequest{ProfileText: text}
	if err := h.Validator.ValidateAnalyzeProfile(&req); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	h.sendMessage(msg.ChatID, render.MsgAnalyzing, nil)
	stop := h.typing(ctx, msg.ChatID)
	result, err := h.Analyzer.Execute(ctx, entity.ProfileAnalysisInput{ProfileText: req.ProfileText})
	stop()
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	st.Analysis = &result
	st.Roadmap = nil
	st.Chat = nil
	st.Step = state.StepReviewing
	if err := h.States.Save(ctx, st); err != nil {
		return err
	}

	ctxzap.Info(ctx, "profile analyzed", zap.Int("suggestions", len(result.Suggestions)))
	h.sendMessage(msg.ChatID, render.RenderAnalysis(result), h.Keyboards.AnalysisKeyboard())
	return nil
}

func (h *ProfileHandler) readResume(ctx context.Context, doc *Document) (string, error) {
	if h.Files == nil {
		return "", fmt.Errorf("%w: file uploads are disabled", entity.ErrUnsupportedDocument)
	}

	data, err := h.Files.Download(ctx, doc.FileID)
	if err != nil {
		return "", err
	}

	text, err := resume.ExtractText(doc.FileName, doc.MimeType, data)
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "resume text extracted",
		zap.String("file_name", doc.FileName),
		zap.Int("bytes", len(data)),
		zap.Int("chars", len([]rune(text))),
	)
	return text, nil
}
