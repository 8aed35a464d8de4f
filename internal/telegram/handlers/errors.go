package handlers

import (
	"context"
	"errors"

	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// HandleError logs err and tells the user what went wrong. Input problems and
// empty searches are the user's to fix and log at warn level.
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrNoSearchResults),
		errors.Is(err, entity.ErrUnsupportedDocument),
		errors.Is(err, entity.ErrDocumentTooLarge):
		ctxzap.Warn(ctx, "request rejected", zap.Error(err))
	default:
		ctxzap.Error(ctx, "request failed", zap.Error(err))
	}

	h.sendMessage(chatID, render.ClassifyError(err), nil)
}
