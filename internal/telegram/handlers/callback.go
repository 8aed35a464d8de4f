package handlers

import (
	"context"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/telegram/keyboard"
	"github.com/futig/career-agent/internal/telegram/render"
	"github.com/futig/career-agent/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler serves inline keyboard presses.
type CallbackHandler struct {
	BaseHandler
}

func NewCallbackHandler(deps Deps) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{Deps: deps, stateName: HandlerStateCallback},
	}
}

func (h *CallbackHandler) Handle(ctx context.Context, msg *Message, st *state.UserState) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		ctxzap.Warn(ctx, "ignoring malformed callback", zap.Error(err))
		return nil
	}

	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(
		zap.String("callback_action", data.Action),
		zap.String("callback_value", data.Value),
	))

	switch data.Action {
	case keyboard.ActionMenu:
		switch data.Value {
		case keyboard.MenuRoadmap:
			return h.buildRoadmap(ctx, msg, st)
		case keyboard.MenuEndChat:
			return h.endChat(ctx, msg, st)
		case keyboard.MenuRestart:
			return h.restart(ctx, msg)
		}
	case keyboard.ActionResources:
		return h.recommend(ctx, msg, st, data.Value)
	case keyboard.ActionStuck:
		return h.startChat(ctx, msg, st, data.Value)
	case keyboard.ActionDownload:
		return h.download(ctx, msg, st, entity.ExportFormat(data.Value))
	}

	ctxzap.Warn(ctx, "unknown callback")
	return nil
}

func (h *CallbackHandler) buildRoadmap(ctx context.Context, msg *Message, st *state.UserState) error {
	if st.Analysis == nil {
		h.sendMessage(msg.ChatID, render.ErrNoAnalysis, nil)
		return nil
	}

	h.sendMessage(msg.ChatID, render.MsgBuildingRoadmap, nil)
	stop := h.typing(ctx, msg.ChatID)
	roadmap, err := h.Roadmaps.Execute(ctx, *st.Analysis)
	stop()
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	st.Roadmap = &roadmap
	st.Chat = nil
	st.Step = state.StepReviewing
	if err := h.States.Save(ctx, st); err != nil {
		return err
	}

	ctxzap.Info(ctx, "roadmap created", zap.Int("phases", len(roadmap.Phases)))
	h.sendMessage(msg.ChatID, render.RenderRoadmap(roadmap), h.Keyboards.RoadmapKeyboard(roadmap))
	return nil
}

func (h *CallbackHandler) recommend(ctx context.Context, msg *Message, st *state.UserState, position string) error {
	milestone, ok := h.milestone(ctx, msg, st, position)
	if !ok {
		return nil
	}

	req := entity.RecommendResourcesRequest{Milestone: milestone}
	if err := h.Validator.ValidateRecommendResources(&req); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	h.sendMessage(msg.ChatID, render.RenderSearching(milestone), nil)
	stop := h.typing(ctx, msg.ChatID)
	set, err := h.Recommender.Execute(ctx, entity.ResourceInput{Milestone: milestone})
	stop()
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	h.sendMessage(msg.ChatID, render.RenderResources(milestone, set), nil)
	return nil
}

func (h *CallbackHandler) startChat(ctx context.Context, msg *Message, st *state.UserState, position string) error {
	milestone, ok := h.milestone(ctx, msg, st, position)
	if !ok {
		return nil
	}

	st.Chat = entity.NewChatSession(milestone)
	st.Step = state.StepChatting
	if err := h.States.Save(ctx, st); err != nil {
		return err
	}

	ctxzap.Info(ctx, "coaching session opened", zap.String("session_id", st.Chat.ID))
	h.sendMessage(msg.ChatID, render.RenderChatStarted(milestone), h.Keyboards.ChatKeyboard())
	return nil
}

func (h *CallbackHandler) endChat(ctx context.Context, msg *Message, st *state.UserState) error {
	st.Chat = nil
	if st.Analysis == nil {
		st.Step = state.StepAwaitingProfile
	} else {
		st.Step = state.StepReviewing
	}
	if err := h.States.Save(ctx, st); err != nil {
		return err
	}

	if st.Roadmap != nil {
		h.sendMessage(msg.ChatID, render.MsgChatEnded, h.Keyboards.RoadmapKeyboard(*st.Roadmap))
		return nil
	}
	h.sendMessage(msg.ChatID, render.MsgChatEnded, nil)
	return nil
}

func (h *CallbackHandler) download(ctx context.Context, msg *Message, st *state.UserState, format entity.ExportFormat) error {
	if st.Roadmap == nil {
		h.sendMessage(msg.ChatID, render.ErrNoRoadmap, nil)
		return nil
	}

	fmtr, err := h.Formatters.Create(format)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	doc, err := fmtr.Format("", *st.Roadmap)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	return h.Sender.SendDocument(msg.ChatID, "roadmap"+fmtr.FileExtension(), doc, render.MsgDocumentCaption)
}

func (h *CallbackHandler) restart(ctx context.Context, msg *Message) error {
	if err := h.States.Reset(ctx, msg.UserID); err != nil {
		return err
	}
	h.sendMessage(msg.ChatID, render.MsgAskProfile, nil)
	return nil
}

func (h *CallbackHandler) milestone(ctx context.Context, msg *Message, st *state.UserState, position string) (string, bool) {
	if st.Roadmap == nil {
		h.sendMessage(msg.ChatID, render.ErrNoRoadmap, nil)
		return "", false
	}

	phase, index, err := keyboard.ParsePosition(position)
	if err != nil {
		ctxzap.Warn(ctx, "ignoring malformed milestone position", zap.Error(err))
		return "", false
	}

	milestone, ok := st.Milestone(phase, index)
	if !ok {
		h.sendMessage(msg.ChatID, render.ErrUnknownMilestone, nil)
		return "", false
	}
	return milestone, true
}
