package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futig/career-agent/internal/agent"
	"github.com/futig/career-agent/internal/config"
	"github.com/futig/career-agent/internal/generation"
	"github.com/futig/career-agent/internal/integration/llm"
	"github.com/futig/career-agent/internal/integration/search"
	"github.com/futig/career-agent/internal/pkg/cache"
	"github.com/futig/career-agent/internal/pkg/formatter"
	pkgRetry "github.com/futig/career-agent/internal/pkg/retry"
	"github.com/futig/career-agent/internal/pkg/validator"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap/zaptest"
)

type fakeAPI struct {
	mu      sync.Mutex
	texts   []string
	updates chan tgbotapi.Update
}

func (a *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		a.texts = append(a.texts, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func (a *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (a *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return a.updates
}

func (a *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	return "https://api.telegram.org/file/bot-token/" + fileID, nil
}

func (a *fakeAPI) StopReceivingUpdates() {}

func (a *fakeAPI) contains(substr string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, text := range a.texts {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

func TestProfileMessageIsAnalyzedWithMocks(t *testing.T) {
	logger := zaptest.NewLogger(t)
	client := generation.NewClient(
		llm.NewMockConnector(logger),
		cache.NewMemoryStore(time.Hour, time.Minute),
		time.Hour,
		config.GenerationConfig{Retry: *pkgRetry.DefaultRetryConfig()},
	)
	agents := Agents{
		Analyzer:    agent.NewProfileAnalyzer(client),
		Roadmaps:    agent.NewRoadmapCreator(client),
		Recommender: agent.NewResourceRecommender(client, search.NewMockConnector(logger)),
		Coach:       agent.NewTroubleshooter(client),
		Validator:   validator.NewInputValidator(),
		Formatters:  formatter.NewFactory(),
	}
	cfg := config.TelegramConfig{
		UpdateTimeout:      1,
		RateLimitPerMinute: 60,
		RateLimitBurst:     10,
		HandlerTimeout:     5 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		StateTTL:           time.Hour,
	}
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 1)}

	b := newBot(cfg, api, agents, cache.NewMemoryStore(time.Hour, time.Minute), logger)
	if err := b.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	api.updates <- tgbotapi.Update{UpdateID: 1, Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1},
		Chat: &tgbotapi.Chat{ID: 1},
		Text: "Computer science graduate with a Python internship.",
	}}

	deadline := time.Now().Add(3 * time.Second)
	for !api.contains("Profile analysis") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if err := b.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !api.contains("Profile analysis") {
		t.Fatalf("analysis was never sent: %v", api.texts)
	}
}
