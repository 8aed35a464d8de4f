// Package bot runs the Telegram update loop and routes updates to handlers.
package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/futig/career-agent/internal/config"
	"github.com/futig/career-agent/internal/telegram/handlers"
	"github.com/futig/career-agent/internal/telegram/middleware"
	"github.com/futig/career-agent/internal/telegram/render"
	"github.com/futig/career-agent/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// API is the subset of *tgbotapi.BotAPI the bot uses.
type API interface {
	handlers.Sender
	handlers.FileLinker
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Bot struct {
	api      API
	cfg      config.TelegramConfig
	states   *state.Manager
	sender   *handlers.MessageSender
	handlers map[string]handlers.Handler
	logger   *zap.Logger

	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware

	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func New(cfg config.TelegramConfig, api API, states *state.Manager, sender *handlers.MessageSender, logger *zap.Logger) *Bot {
	return &Bot{
		api:         api,
		cfg:         cfg,
		states:      states,
		sender:      sender,
		handlers:    make(map[string]handlers.Handler),
		logger:      logger,
		loggingMW:   middleware.NewLoggingMiddleware(logger),
		recoveryMW:  middleware.NewRecoveryMiddleware(logger, api),
		rateLimitMW: middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger, api),
		stopChan:    make(chan struct{}),
	}
}

func (b *Bot) RegisterHandler(h handlers.Handler) {
	b.handlers[h.GetState()] = h
}

// Start begins long polling; updates are handled until ctx is done or Stop is called.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	go b.processUpdates(ctx, updates)

	b.logger.Info("telegram bot started", zap.Int("handlers", len(b.handlers)))
	return nil
}

// Stop waits for in-flight updates up to the configured shutdown timeout.
func (b *Bot) Stop() error {
	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("telegram bot stopped")
		return nil
	case <-time.After(b.cfg.ShutdownTimeout):
		return fmt.Errorf("shutdown timeout of %s exceeded", b.cfg.ShutdownTimeout)
	}
}

func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.stopChan:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u tgbotapi.Update) {
			b.recoveryMW.Handle(u, func(u tgbotapi.Update) {
				b.handleUpdate(ctx, u)
			})
		})
	})
}

func (b *Bot) handleUpdate(parent context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), b.cfg.HandlerTimeout)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID, chatID := message.From.ID, message.Chat.ID
	ctx = b.withLogger(ctx, userID, chatID)

	unlock := b.states.Lock(userID)
	defer unlock()

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	doc := documentOf(message)
	if doc == nil && strings.TrimSpace(message.Text) == "" {
		b.sender.Send(chatID, render.ErrTextOnly, nil)
		return
	}

	st, err := b.states.Get(ctx, userID, chatID)
	if err != nil {
		ctxzap.Error(ctx, "failed to load user state", zap.Error(err))
		b.sender.Send(chatID, render.ErrGeneric, nil)
		return
	}

	// A resume file always starts a new analysis, whatever the current step.
	step := st.Step
	if doc != nil {
		step = state.StepAwaitingProfile
	}

	handler, ok := b.handlers[string(step)]
	if !ok {
		b.sender.Send(chatID, render.MsgUseButtons, nil)
		return
	}

	msg := &handlers.Message{
		ChatID:    chatID,
		UserID:    userID,
		MessageID: message.MessageID,
		Text:      message.Text,
		Document:  doc,
	}
	b.dispatch(ctx, handler, msg, st)
}

func documentOf(message *tgbotapi.Message) *handlers.Document {
	if message.Document == nil {
		return nil
	}
	return &handlers.Document{
		FileID:   message.Document.FileID,
		FileName: message.Document.FileName,
		MimeType: message.Document.MimeType,
		FileSize: int64(message.Document.FileSize),
	}
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.sender.AnswerCallback(query.ID, "")
		return
	}

	userID, chatID := query.From.ID, query.Message.Chat.ID
	ctx = b.withLogger(ctx, userID, chatID)

	// Answer first so the client stops its spinner while the work runs.
	b.sender.AnswerCallback(query.ID, "")

	unlock := b.states.Lock(userID)
	defer unlock()

	st, err := b.states.Get(ctx, userID, chatID)
	if err != nil {
		ctxzap.Error(ctx, "failed to load user state", zap.Error(err))
		b.sender.Send(chatID, render.ErrGeneric, nil)
		return
	}

	handler, ok := b.handlers[handlers.HandlerStateCallback]
	if !ok {
		ctxzap.Error(ctx, "no callback handler registered")
		return
	}

	msg := &handlers.Message{
		ChatID:       chatID,
		UserID:       userID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}
	b.dispatch(ctx, handler, msg, st)
}

func (b *Bot) dispatch(ctx context.Context, handler handlers.Handler, msg *handlers.Message, st *state.UserState) {
	if err := handler.Handle(ctx, msg, st); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("state", handler.GetState()),
		)
		b.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		if err := b.states.Reset(ctx, message.From.ID); err != nil {
			ctxzap.Error(ctx, "failed to reset user state", zap.Error(err))
		}
		b.sender.Send(chatID, render.MsgWelcome, nil)
		b.sender.Send(chatID, render.MsgAskProfile, nil)
	case "cancel":
		if err := b.states.Reset(ctx, message.From.ID); err != nil {
			ctxzap.Error(ctx, "failed to reset user state", zap.Error(err))
			b.sender.Send(chatID, render.ErrGeneric, nil)
			return
		}
		b.sender.Send(chatID, render.MsgCancelled, nil)
	default:
		b.sender.Send(chatID, render.MsgHelp, nil)
	}
}

func (b *Bot) withLogger(ctx context.Context, userID, chatID int64) context.Context {
	return ctxzap.ToContext(ctx, b.logger.With(
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
	))
}
