// Package handlers implements the bot's per-state message handlers.
package handlers

import (
	"context"

	"github.com/futig/career-agent/internal/telegram/keyboard"
	"github.com/futig/career-agent/internal/telegram/state"
)

// HandlerStateCallback routes button presses regardless of the user's step.
const HandlerStateCallback = "CALLBACK"

// Message is a normalized Telegram message or button press.
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	Document     *Document
	CallbackData string
	CallbackID   string
}

// Document is a file attached to a message.
type Document struct {
	FileID   string
	FileName string
	MimeType string
	FileSize int64
}

type Handler interface {
	// Handle processes msg for a user whose state is st. Errors already
	// reported to the user are not returned.
	Handle(ctx context.Context, msg *Message, st *state.UserState) error

	// GetState returns the step or HandlerStateCallback this handler serves.
	GetState() string
}

// Deps are shared by every handler.
type Deps struct {
	Analyzer    ProfileAnalyzer
	Roadmaps    RoadmapCreator
	Recommender ResourceRecommender
	Coach       Troubleshooter
	Validator   InputValidator
	Formatters  FormatterFactory
	Files       FileDownloader

	States    *state.Manager
	Sender    *MessageSender
	Keyboards *keyboard.Builder
}

type BaseHandler struct {
	Deps
	stateName string
}

func (h *BaseHandler) GetState() string {
	return h.stateName
}

func (h *BaseHandler) sendMessage(chatID int64, text string, markup any) {
	_ = h.Sender.Send(chatID, text, markup)
}

// typing shows the "typing" action until the returned func is called.
func (h *BaseHandler) typing(ctx context.Context, chatID int64) func() {
	n := NewTypingNotifier(h.Sender.api, chatID, h.Sender.logger)
	n.Start(ctx)
	return n.Stop
}
