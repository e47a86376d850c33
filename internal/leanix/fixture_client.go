package leanix

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

type fixtureClient struct {
	path string
}

// NewFixtureClient returns a Client that answers every query with the GraphQL
// response stored at path, as written by cmd/mockgen. Facet filters are not applied.
func NewFixtureClient(path string) Client {
	return &fixtureClient{path: path}
}

func (c *fixtureClient) ExecuteGraphQL(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	log.Debug().Str("path", c.path).Msg("Serving GraphQL response from fixture")

	var resp GraphQLResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode fixture %s: %w", c.path, err)
	}
	if len(resp.Errors) > 0 {
		return nil, GraphQLErrors(resp.Errors)
	}
	return resp.Data, nil
}
