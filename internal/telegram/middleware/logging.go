package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()
	userID, chatID := updateIDs(update)

	updateType := "other"
	switch {
	case update.CallbackQuery != nil:
		updateType = "callback"
	case update.Message != nil && update.Message.IsCommand():
		updateType = "command"
	case update.Message != nil && update.Message.Text != "":
		updateType = "text"
	}

	next(update)

	m.logger.Info("telegram update processed",
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("type", updateType),
		zap.Duration("duration", time.Since(start)),
	)
}
