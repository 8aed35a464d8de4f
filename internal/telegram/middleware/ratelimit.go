package middleware

import (
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	rateLimitMessage = "⚠️ Too many requests. Please wait a little before trying again."
	warningInterval  = 30 * time.Second
	idleUserTTL      = time.Hour
)

type userLimit struct {
	limiter *rate.Limiter
	// warned throttles warnings to one per interval.
	warned *rate.Limiter
}

// RateLimiterMiddleware applies a token bucket per user. Idle users are evicted after an hour.
type RateLimiterMiddleware struct {
	limits *gocache.Cache
	every  rate.Limit
	burst  int
	logger *zap.Logger
	sender Sender
}

func NewRateLimiterMiddleware(requestsPerMinute, burst int, logger *zap.Logger, sender Sender) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits: gocache.New(idleUserTTL, 10*time.Minute),
		every:  rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:  burst,
		logger: logger,
		sender: sender,
	}
}

func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID := updateIDs(update)
	if userID == 0 {
		next(update)
		return
	}

	limit := rl.limitFor(userID)
	if limit.limiter.Allow() {
		next(update)
		return
	}

	rl.logger.Warn("rate limit exceeded",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
	)

	if chatID != 0 && limit.warned.Allow() {
		if _, err := rl.sender.Send(tgbotapi.NewMessage(chatID, rateLimitMessage)); err != nil {
			rl.logger.Error("failed to send rate limit warning",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}
}

func (rl *RateLimiterMiddleware) limitFor(userID int64) *userLimit {
	key := strconv.FormatInt(userID, 10)

	fresh := &userLimit{
		limiter: rate.NewLimiter(rl.every, rl.burst),
		warned:  rate.NewLimiter(rate.Every(warningInterval), 1),
	}
	// Add fails when another update already registered the user.
	if err := rl.limits.Add(key, fresh, gocache.DefaultExpiration); err == nil {
		return fresh
	}

	v, ok := rl.limits.Get(key)
	if !ok {
		rl.limits.SetDefault(key, fresh)
		return fresh
	}
	limit := v.(*userLimit)
	rl.limits.SetDefault(key, limit)
	return limit
}
