package leanix

import (
	"context"
	"encoding/json"
	"fmt"

	"architect-report/internal/completion"
	"architect-report/internal/report"

	"github.com/rs/zerolog/log"
)

// Subscription type and role names that identify a responsible architect.
const (
	ResponsibleType        = "RESPONSIBLE"
	ProductAreaArchitect   = "Product Area Architect"
	ProductFamilyArchitect = "Product Family Architect"
)

// DisplayName renders a user as "firstName lastName", or by email when no last name is set.
func DisplayName(u UserDTO) string {
	if u.LastName != nil {
		return fmt.Sprintf("%s %s", u.FirstName, *u.LastName)
	}
	return u.Email
}

// IsArchitectSubscription reports whether a subscription makes its user a
// responsible architect of the fact sheet.
func IsArchitectSubscription(sub SubscriptionNode) bool {
	if sub.Type != ResponsibleType || len(sub.Roles) == 0 {
		return false
	}
	for _, role := range sub.Roles {
		if role.Name == ProductAreaArchitect || role.Name == ProductFamilyArchitect {
			return true
		}
	}
	return false
}

// ExtractRecords emits one record per architect subscription, bucketed by the
// completion of the fact sheet it belongs to.
func ExtractRecords(data *AllFactSheetsData) []report.Record {
	records := make([]report.Record, 0)
	if data == nil {
		return records
	}

	for _, edge := range data.AllFactSheets.Edges {
		node := edge.Node
		level := completion.LevelFor(node.Percentage())

		for _, subEdge := range node.Subscriptions.Edges {
			sub := subEdge.Node
			if !IsArchitectSubscription(sub) {
				continue
			}
			records = append(records, report.Record{
				PersonID:   sub.User.ID,
				PersonName: DisplayName(sub.User),
				Level:      level,
			})
		}
	}
	return records
}

// Indicator is shown while a query is in flight.
type Indicator interface {
	Show()
	Hide()
}

type noopIndicator struct{}

func (noopIndicator) Show() {}
func (noopIndicator) Hide() {}

// Inventory fetches architect subscription records through a Client.
type Inventory struct {
	client    Client
	pageSize  int
	indicator Indicator
}

// NewInventory wraps client. A nil indicator disables progress reporting.
func NewInventory(client Client, pageSize int, indicator Indicator) *Inventory {
	if indicator == nil {
		indicator = noopIndicator{}
	}
	return &Inventory{client: client, pageSize: pageSize, indicator: indicator}
}

// FetchRecords runs the subscription query for sel and maps the result.
func (inv *Inventory) FetchRecords(ctx context.Context, sel FacetSelection) ([]report.Record, error) {
	inv.indicator.Show()
	defer inv.indicator.Hide()

	raw, err := inv.client.ExecuteGraphQL(ctx, SubscriptionQuery(inv.pageSize), QueryVariables(sel))
	if err != nil {
		log.Error().Err(err).Msg("error in fetchGraphQLData")
		return nil, fmt.Errorf("failed to query fact sheets: %w", err)
	}

	var data AllFactSheetsData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Error().Err(err).Msg("error in fetchGraphQLData")
		return nil, fmt.Errorf("failed to decode fact sheets: %w", err)
	}

	records := ExtractRecords(&data)
	log.Debug().
		Int("factSheets", len(data.AllFactSheets.Edges)).
		Int("totalCount", data.AllFactSheets.TotalCount).
		Int("records", len(records)).
		Msg("Fact sheets mapped to architect subscriptions")
	return records, nil
}
