package handlers

import (
	"context"
	"strings"

	"github.com/futig/career-agent/internal/telegram/render"
	"github.com/futig/career-agent/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ChatHandler forwards questions to the coach for the selected milestone.
type ChatHandler struct {
	BaseHandler
}

func NewChatHandler(deps Deps) *ChatHandler {
	return &ChatHandler{
		BaseHandler: BaseHandler{Deps: deps, stateName: string(state.StepChatting)},
	}
}

func (h *ChatHandler) Handle(ctx context.Context, msg *Message, st *state.UserState) error {
	if st.Chat == nil {
		st.Step = state.StepReviewing
		if err := h.States.Save(ctx, st); err != nil {
			return err
		}
		h.sendMessage(msg.ChatID, render.MsgUseButtons, nil)
		return nil
	}

	question := strings.TrimSpace(msg.Text)
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(
		zap.String("session_id", st.Chat.ID),
	))

	stop := h.typing(ctx, msg.ChatID)
	reply, err := h.Coach.Converse(ctx, st.Chat, question)
	stop()
	if err != nil {
		// The failed turn is not saved, so the stored transcript keeps alternating.
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if err := h.States.Save(ctx, st); err != nil {
		return err
	}

	h.sendMessage(msg.ChatID, render.Truncate(reply.Content), h.Keyboards.ChatKeyboard())
	return nil
}
