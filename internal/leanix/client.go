package leanix

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Client executes GraphQL documents against the LeanIX pathfinder API.
type Client interface {
	ExecuteGraphQL(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
}

// Config holds the connection and authentication settings for a LeanIX workspace.
type Config struct {
	BaseURL   string
	Workspace string

	// API token, exchanged for a bearer token via the MTM OAuth2 endpoint.
	APIToken string
	// Pre-issued bearer token; takes precedence over APIToken.
	AccessToken string

	// Replaces the HTTP client with a recorded GraphQL response.
	FixturePath string

	Timeout       time.Duration
	MaxRetryTime  time.Duration
	RetryInterval time.Duration
	CacheTTL      time.Duration
	PageSize      int
}

var (
	ErrUnauthorized = errors.New("LeanIX authentication failed (401/403), please check LEANIX_API_TOKEN")
	ErrRateLimited  = errors.New("LeanIX rate limit exceeded (429)")
)

// NewClient creates a client for cfg: a fixture reader when FixturePath is set,
// otherwise the HTTP GraphQL client.
func NewClient(cfg Config) Client {
	if cfg.FixturePath != "" {
		return NewFixtureClient(cfg.FixturePath)
	}
	return NewGraphQLClient(cfg)
}
