package leanix

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	graphQLPath = "/services/pathfinder/v1/graphql"
	tokenPath   = "/services/mtm/v1/oauth2/token"
)

type graphQLClient struct {
	cfg        Config
	httpClient *http.Client

	cache      map[string]*cacheEntry
	cacheMutex sync.Mutex
}

type cacheEntry struct {
	Value       json.RawMessage
	Expiration  time.Time
	AccessCount int
	OriginalTTL time.Duration
}

// NewGraphQLClient creates an HTTP client for the pathfinder GraphQL endpoint.
// Requests are authenticated with AccessToken if set, otherwise with a bearer
// token obtained by exchanging APIToken at the MTM token endpoint.
func NewGraphQLClient(cfg Config) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.MaxRetryTime == 0 {
		cfg.MaxRetryTime = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	base := &http.Client{Timeout: cfg.Timeout}
	return &graphQLClient{
		cfg:        cfg,
		httpClient: authenticatedClient(cfg, base),
		cache:      make(map[string]*cacheEntry),
	}
}

func authenticatedClient(cfg Config, base *http.Client) *http.Client {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	if cfg.AccessToken != "" {
		client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		}))
		client.Timeout = base.Timeout
		return client
	}

	if cfg.APIToken != "" {
		cc := clientcredentials.Config{
			ClientID:     "apitoken",
			ClientSecret: cfg.APIToken,
			TokenURL:     cfg.BaseURL + tokenPath,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		client := cc.Client(ctx)
		client.Timeout = base.Timeout
		return client
	}

	log.Warn().Msg("No LeanIX credentials configured, requests will be unauthenticated")
	return base
}

func (c *graphQLClient) getFromCache(key string) (json.RawMessage, bool) {
	if c.cfg.CacheTTL <= 0 {
		return nil, false
	}

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		log.Debug().Str("key", key).Msg("Cache miss")
		return nil, false
	}

	if time.Now().After(entry.Expiration) {
		delete(c.cache, key)
		log.Debug().Str("key", key).Msg("Cache entry expired")
		return nil, false
	}
	log.Debug().Str("key", key).Msg("Cache hit")

	// Sliding window extension
	if entry.AccessCount < 6 {
		entry.Expiration = time.Now().Add(entry.OriginalTTL)
		entry.AccessCount++
		log.Trace().Str("key", key).Int("count", entry.AccessCount).Msg("Extended cache TTL")
	}

	return entry.Value, true
}

func (c *graphQLClient) addToCache(key string, value json.RawMessage) {
	if c.cfg.CacheTTL <= 0 {
		return
	}

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	c.cache[key] = &cacheEntry{
		Value:       value,
		Expiration:  time.Now().Add(c.cfg.CacheTTL),
		OriginalTTL: c.cfg.CacheTTL,
		AccessCount: 1,
	}
	log.Debug().Str("key", key).Dur("ttl", c.cfg.CacheTTL).Msg("Added to cache")
}

func cacheKey(body []byte) string {
	sum := sha256.Sum256(body)
	return "graphql:" + hex.EncodeToString(sum[:8])
}

func (c *graphQLClient) ExecuteGraphQL(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	key := cacheKey(body)
	if val, ok := c.getFromCache(key); ok {
		return val, nil
	}

	var data json.RawMessage
	attempt := 0
	op := func() error {
		attempt++
		var err error
		data, err = c.post(ctx, body)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("LeanIX GraphQL request failed")
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.cfg.MaxRetryTime
	if c.cfg.RetryInterval > 0 {
		b.InitialInterval = c.cfg.RetryInterval
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	c.addToCache(key, data)
	return data, nil
}

// post performs one request. Errors that a retry cannot fix are wrapped with backoff.Permanent.
func (c *graphQLClient) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	url := c.cfg.BaseURL + graphQLPath
	log.Info().Msg("Requesting fact sheets from LeanIX")
	log.Debug().Str("url", url).Int("bytes", len(body)).Msg("LeanIX GraphQL details")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil && rerr.Response.StatusCode < 500 {
			return nil, backoff.Permanent(fmt.Errorf("%w: token exchange returned status %d", ErrUnauthorized, rerr.Response.StatusCode))
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		switch {
		case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
			return nil, backoff.Permanent(ErrUnauthorized)
		case resp.StatusCode == http.StatusTooManyRequests:
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				return nil, fmt.Errorf("%w, retry after %s seconds", ErrRateLimited, retryAfter)
			}
			return nil, ErrRateLimited
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("LeanIX API returned status %d", resp.StatusCode)
		default:
			return nil, backoff.Permanent(fmt.Errorf("LeanIX API returned status %d, please check the query and workspace", resp.StatusCode))
		}
	}

	var result GraphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode LeanIX response: %w", err))
	}
	if len(result.Errors) > 0 {
		return nil, backoff.Permanent(GraphQLErrors(result.Errors))
	}
	return result.Data, nil
}
