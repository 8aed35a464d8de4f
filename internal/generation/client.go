// Package generation fronts the text-generation backend with a prompt-keyed cache.
package generation

import (
	"context"
	"strings"
	"time"

	"github.com/futig/career-agent/internal/config"
	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/cache"
	pkgRetry "github.com/futig/career-agent/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	opGenerateContent = "generate content"
	opGenerateChat    = "generate chat response"
)

// Backend is the raw text-generation service.
type Backend interface {
	// GenerateJSON returns the backend's reply with output forced to JSON.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// GenerateChat sends prompt as the current message after the given history.
	GenerateChat(ctx context.Context, prompt string, history []entity.ChatTurn) (string, error)
}

// Client is created once per process and shared by every agent.
type Client struct {
	backend Backend
	store   cache.Store
	ttl     time.Duration
	retry   pkgRetry.RetryConfig
	// flight is nil unless coalescing is enabled.
	flight *singleflight.Group
}

func NewClient(
	backend Backend,
	store cache.Store,
	ttl time.Duration,
	cfg config.GenerationConfig,
) *Client {
	c := &Client{
		backend: backend,
		store:   store,
		ttl:     ttl,
		retry:   cfg.Retry,
	}
	if cfg.Coalesce {
		c.flight = &singleflight.Group{}
	}
	return c
}

// GenerateContent returns the cached reply for prompt, or asks the backend and
// caches the reply for the configured TTL. The key is the exact prompt text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if text, ok := c.lookup(ctx, prompt); ok {
		ctxzap.Debug(ctx, "generation cache hit", zap.Int("prompt_length", len(prompt)))
		return text, nil
	}

	ctxzap.Debug(ctx, "generation cache miss", zap.Int("prompt_length", len(prompt)))

	if c.flight == nil {
		return c.generate(ctx, prompt)
	}

	// The shared call outlives any single caller's cancellation; each caller
	// still stops waiting when its own ctx is done.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(prompt, func() (any, error) {
		return c.generate(flightCtx, prompt)
	})

	select {
	case res := <-ch:
		if res.Shared {
			ctxzap.Debug(ctx, "generation shared with concurrent caller")
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", &entity.GenerationError{Op: opGenerateContent, Err: ctx.Err()}
	}
}

// GenerateChatResponse is never cached: the history makes each call unique.
func (c *Client) GenerateChatResponse(ctx context.Context, prompt string, history []entity.ChatTurn) (string, error) {
	text, err := pkgRetry.Do(ctx, c.retry, func() (string, error) {
		return c.backend.GenerateChat(ctx, prompt, history)
	})
	if err != nil {
		ctxzap.Error(ctx, "chat generation failed", zap.Error(err))
		return "", &entity.GenerationError{Op: opGenerateChat, Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return "", &entity.GenerationError{Op: opGenerateChat, Err: entity.ErrEmptyResponse}
	}

	return text, nil
}

// Forget drops the cached reply for prompt.
func (c *Client) Forget(ctx context.Context, prompt string) {
	if err := c.store.Delete(ctx, prompt); err != nil {
		ctxzap.Warn(ctx, "failed to drop cached generation", zap.Error(err))
	}
}

func (c *Client) lookup(ctx context.Context, prompt string) (string, bool) {
	text, ok, err := c.store.Get(ctx, prompt)
	if err != nil {
		// A broken cache degrades to a miss.
		ctxzap.Warn(ctx, "generation cache lookup failed", zap.Error(err))
		return "", false
	}
	return text, ok
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	text, err := pkgRetry.Do(ctx, c.retry, func() (string, error) {
		return c.backend.GenerateJSON(ctx, prompt)
	})
	if err != nil {
		ctxzap.Error(ctx, "content generation failed", zap.Error(err))
		return "", &entity.GenerationError{Op: opGenerateContent, Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return "", &entity.GenerationError{Op: opGenerateContent, Err: entity.ErrEmptyResponse}
	}

	if err := c.store.Set(ctx, prompt, text, c.ttl); err != nil {
		ctxzap.Warn(ctx, "failed to cache generation", zap.Error(err))
	}

	return text, nil
}
