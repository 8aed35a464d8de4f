package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/career-agent/internal/agent"
	"github.com/futig/career-agent/internal/api"
	careerapi "github.com/futig/career-agent/internal/api/career"
	"github.com/futig/career-agent/internal/config"
	"github.com/futig/career-agent/internal/generation"
	"github.com/futig/career-agent/internal/integration/llm"
	"github.com/futig/career-agent/internal/integration/search"
	"github.com/futig/career-agent/internal/pkg/cache"
	"github.com/futig/career-agent/internal/pkg/formatter"
	pkglogger "github.com/futig/career-agent/internal/pkg/logger"
	"github.com/futig/career-agent/internal/pkg/validator"
	"github.com/futig/career-agent/internal/telegram"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkglogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	store, err := setupCache(ctx, cfg.CacheCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	agents, err := buildAgents(ctx, cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	careerHandler := careerapi.NewHandler(
		agents.analyzer,
		agents.roadmaps,
		agents.recommender,
		agents.coach,
		agents.validator,
		agents.formatters,
	)
	logger.Info("Agents and API handlers initialized")

	router := api.SetupRouter(careerHandler, api.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)

	server := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Generation can take most of the request timeout.
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		store:  store,
		logger: logger,
	}, nil
}

// BuildTelegramBot builds the bot on the same agents and generation cache as the HTTP API.
func BuildTelegramBot() (*BotApp, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.TelegramCfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	logger, err := pkglogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	store, err := setupCache(ctx, cfg.CacheCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	// Conversations get their own keyspace and TTL.
	stateCfg := cfg.CacheCfg
	stateCfg.KeyPrefix = ""
	stateCfg.TTL = cfg.TelegramCfg.StateTTL
	stateStore, err := setupCache(ctx, stateCfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("setup bot state store: %w", err)
	}

	closeStores := func() {
		_ = store.Close()
		_ = stateStore.Close()
	}

	agents, err := buildAgents(ctx, cfg, store, logger)
	if err != nil {
		closeStores()
		return nil, err
	}

	bot, err := telegram.NewBot(cfg.TelegramCfg, telegram.Agents{
		Analyzer:    agents.analyzer,
		Roadmaps:    agents.roadmaps,
		Recommender: agents.recommender,
		Coach:       agents.coach,
		Validator:   agents.validator,
		Formatters:  agents.formatters,
	}, stateStore, logger)
	if err != nil {
		closeStores()
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &BotApp{
		bot:    bot,
		stores: []cache.Store{store, stateStore},
		logger: logger,
	}, nil
}

type agentSet struct {
	analyzer    *agent.ProfileAnalyzer
	roadmaps    *agent.RoadmapCreator
	recommender *agent.ResourceRecommender
	coach       *agent.Troubleshooter
	validator   *validator.Validator
	formatters  *formatter.Factory
}

// buildAgents picks real or mock connectors and builds every agent on one shared generation client.
func buildAgents(ctx context.Context, cfg *config.Config, store cache.Store, logger *zap.Logger) (*agentSet, error) {
	var backend generation.Backend
	var searcher agent.Searcher

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		backend = llm.NewMockConnector(logger)
		searcher = search.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services", zap.String("model", cfg.GenerationCfg.Model))
		gemini, err := llm.NewConnector(ctx, cfg.GenerationCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup generation backend: %w", err)
		}
		backend = gemini
		searcher = search.NewConnector(cfg.SearchCfg, logger)
	}

	client := generation.NewClient(backend, store, cfg.CacheCfg.TTL, cfg.GenerationCfg)
	logger.Info("Generation client initialized",
		zap.Duration("cache_ttl", cfg.CacheCfg.TTL),
		zap.Bool("coalesce", cfg.GenerationCfg.Coalesce),
	)

	return &agentSet{
		analyzer:    agent.NewProfileAnalyzer(client),
		roadmaps:    agent.NewRoadmapCreator(client),
		recommender: agent.NewResourceRecommender(client, searcher),
		coach:       agent.NewTroubleshooter(client),
		validator:   validator.NewInputValidator(),
		formatters:  formatter.NewFactory(),
	}, nil
}

func setupCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (cache.Store, error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Using redis cache", zap.String("addr", cfg.RedisAddr), zap.String("key_prefix", cfg.KeyPrefix))
		return store, nil
	default:
		logger.Info("Using in-memory cache", zap.Duration("ttl", cfg.TTL))
		return cache.NewMemoryStore(cfg.TTL, cfg.CleanupInterval), nil
	}
}
