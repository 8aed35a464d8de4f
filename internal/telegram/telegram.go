// Package telegram wires the career coaching agents into a Telegram bot.
package telegram

import (
	"context"
	"fmt"

	"github.com/futig/career-agent/internal/config"
	"github.com/futig/career-agent/internal/pkg/cache"
	"github.com/futig/career-agent/internal/telegram/bot"
	"github.com/futig/career-agent/internal/telegram/handlers"
	"github.com/futig/career-agent/internal/telegram/keyboard"
	"github.com/futig/career-agent/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// Agents are the operations the bot exposes to users.
type Agents struct {
	Analyzer    handlers.ProfileAnalyzer
	Roadmaps    handlers.RoadmapCreator
	Recommender handlers.ResourceRecommender
	Coach       handlers.Troubleshooter
	Validator   handlers.InputValidator
	Formatters  handlers.FormatterFactory
}

// NewBot authorizes against the Bot API and registers every handler.
// store holds per-user state.
func NewBot(cfg config.TelegramConfig, agents Agents, store cache.Store, logger *zap.Logger) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return newBot(cfg, api, agents, store, logger), nil
}

func newBot(cfg config.TelegramConfig, api bot.API, agents Agents, store cache.Store, logger *zap.Logger) *bot.Bot {
	states := state.NewManager(store, cfg.StateTTL)
	sender := handlers.NewMessageSender(api, logger)

	deps := handlers.Deps{
		Analyzer:    agents.Analyzer,
		Roadmaps:    agents.Roadmaps,
		Recommender: agents.Recommender,
		Coach:       agents.Coach,
		Validator:   agents.Validator,
		Formatters:  agents.Formatters,
		Files:       handlers.NewFileDownloader(api, cfg.MaxDocumentBytes),
		States:      states,
		Sender:      sender,
		Keyboards:   keyboard.NewBuilder(),
	}

	b := bot.New(cfg, api, states, sender, logger)
	b.RegisterHandler(handlers.NewProfileHandler(deps))
	b.RegisterHandler(handlers.NewChatHandler(deps))
	b.RegisterHandler(handlers.NewCallbackHandler(deps))
	return b
}
