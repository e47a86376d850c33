// Package navigation turns a selected bar back into an inventory view filtered to its person.
package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"architect-report/internal/leanix"
	"architect-report/internal/report"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

// Navigator shows the host inventory restricted by facet filters.
type Navigator interface {
	NavigateToInventory(ctx context.Context, filters []leanix.FacetFilter) error
}

// InventoryURL builds the deep link to the workspace inventory with filters applied.
// Filters are passed as a JSON array in the facetFilters query parameter.
func InventoryURL(baseURL, workspace string, filters []leanix.FacetFilter) (string, error) {
	if baseURL == "" {
		return "", fmt.Errorf("LeanIX base URL is not configured")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LeanIX base URL: %w", err)
	}
	if workspace != "" {
		u = u.JoinPath(workspace)
	}
	u = u.JoinPath("inventory")

	encoded, err := json.Marshal(filters)
	if err != nil {
		return "", fmt.Errorf("failed to encode facet filters: %w", err)
	}
	q := url.Values{}
	q.Set("facetFilters", string(encoded))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// BrowserNavigator opens inventory deep links in the default browser,
// or only prints them when PrintOnly is set.
type BrowserNavigator struct {
	BaseURL   string
	Workspace string
	PrintOnly bool
	Out       io.Writer

	// Open defaults to browser.OpenURL.
	Open func(url string) error
}

func (n *BrowserNavigator) NavigateToInventory(ctx context.Context, filters []leanix.FacetFilter) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	link, err := InventoryURL(n.BaseURL, n.Workspace, filters)
	if err != nil {
		return err
	}

	if n.Out != nil {
		fmt.Fprintln(n.Out, link)
	}
	if n.PrintOnly {
		return nil
	}

	open := n.Open
	if open == nil {
		open = browser.OpenURL
	}
	log.Debug().Str("url", link).Msg("Opening inventory in browser")
	if err := open(link); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// ToPerson navigates to the fact sheets of the person at index in rep.
// An index outside the report fails with report.ErrInvalidPerson.
func ToPerson(ctx context.Context, nav Navigator, rep *report.Report, index int) (report.PersonAggregate, error) {
	person, err := rep.PersonAt(index)
	if err != nil {
		return report.PersonAggregate{}, err
	}

	log.Info().Int("index", index).Str("person", person.ID).Str("name", person.Name).Msg("Navigating to inventory")
	if err := nav.NavigateToInventory(ctx, leanix.SubscriptionFilters(person.ID)); err != nil {
		return person, err
	}
	return person, nil
}
