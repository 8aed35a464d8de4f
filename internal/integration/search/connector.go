package search

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avast/retry-go/v4"
	"github.com/futig/career-agent/internal/config"
	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/integration/common"
	pkghttp "github.com/futig/career-agent/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector queries the Google Custom Search JSON API.
type Connector struct {
	config    config.SearchConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.SearchConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, pkghttp.WithAPIKeyParam("key", cfg.APIKey)),
		config:    cfg,
		logger:    logger,
	}
}

// Search returns at most MaxResults results, never more than entity.MaxSearchResults, in the backend's ranking order.
// Any failure (network, auth, quota, decoding) is logged and yields an empty list.
func (c *Connector) Search(ctx context.Context, query string) []entity.SearchResult {
	ctxzap.Info(ctx, "searching the web for grounding", zap.String("query", query))

	opts := append(c.config.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(pkghttp.IsRetryable),
	)

	var resp entity.GoogleSearchResponse
	err := retry.Do(func() error {
		resp = entity.GoogleSearchResponse{}
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.Endpoint, nil, &resp,
			pkghttp.WithQuery("cx", c.config.EngineID),
			pkghttp.WithQuery("q", query),
			pkghttp.WithQuery("num", strconv.Itoa(clamp(c.config.MaxResults))),
		)
	}, opts...)
	if err != nil {
		ctxzap.Error(ctx, "web search failed, returning no results", zap.Error(err))
		return []entity.SearchResult{}
	}

	results := limit(resp.Items, clamp(c.config.MaxResults))
	ctxzap.Info(ctx, "web search completed", zap.Int("result_count", len(results)))

	return results
}

func clamp(n int) int {
	if n <= 0 || n > entity.MaxSearchResults {
		return entity.MaxSearchResults
	}
	return n
}

func limit(items []entity.SearchResult, n int) []entity.SearchResult {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]entity.SearchResult, len(items))
	copy(out, items)
	return out
}
