package leanix

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Facet operators understood by the inventory.
const (
	OperatorOR  = "OR"
	OperatorAND = "AND"
	OperatorNOR = "NOR"
)

// FacetFilter constrains fact sheets by one facet.
type FacetFilter struct {
	FacetKey string   `json:"facetKey" jsonschema:"facet to filter on, e.g. FactSheetTypes or installStatus"`
	Operator string   `json:"operator" jsonschema:"OR, AND or NOR"`
	Keys     []string `json:"keys" jsonschema:"facet values"`
}

// DirectHit pins a single fact sheet by ID.
type DirectHit struct {
	ID string `json:"id"`
}

// FacetSelection is the report's current filter state, as delivered by the host
// whenever the user changes facets.
type FacetSelection struct {
	Facets             []FacetFilter `json:"facets,omitempty"`
	FullTextSearchTerm string        `json:"fullTextSearchTerm,omitempty"`
	DirectHits         []DirectHit   `json:"directHits,omitempty"`
}

// DefaultFacetFilters selects non-retired IT components of category "component".
func DefaultFacetFilters() []FacetFilter {
	return []FacetFilter{
		{FacetKey: "FactSheetTypes", Operator: OperatorOR, Keys: []string{"ITComponent"}},
		{FacetKey: "category", Operator: OperatorOR, Keys: []string{"component"}},
		{FacetKey: "installStatus", Operator: OperatorNOR, Keys: []string{"retired"}},
	}
}

// FacetFiltersOrDefault returns the selected facets, or the defaults when none are set.
func (s FacetSelection) FacetFiltersOrDefault() []FacetFilter {
	if s.Facets == nil {
		return DefaultFacetFilters()
	}
	return s.Facets
}

// SubscriptionFilters returns the inventory filter for all fact sheets a person is subscribed to.
func SubscriptionFilters(personID string) []FacetFilter {
	return append(DefaultFacetFilters(), FacetFilter{
		FacetKey: "Subscriptions",
		Operator: OperatorOR,
		Keys:     []string{personID},
	})
}

var (
	selectionSchemaOnce sync.Once
	selectionSchema     *jsonschema.Resolved
	selectionSchemaErr  error
)

func resolvedSelectionSchema() (*jsonschema.Resolved, error) {
	selectionSchemaOnce.Do(func() {
		schema, err := jsonschema.For[FacetSelection](nil)
		if err != nil {
			selectionSchemaErr = fmt.Errorf("failed to infer facet selection schema: %w", err)
			return
		}
		if facets, ok := schema.Properties["facets"]; ok && facets.Items != nil {
			if op, ok := facets.Items.Properties["operator"]; ok {
				op.Enum = []any{OperatorOR, OperatorAND, OperatorNOR}
			}
		}
		selectionSchema, selectionSchemaErr = schema.Resolve(nil)
	})
	return selectionSchema, selectionSchemaErr
}

// ParseSelection validates a JSON facet selection and decodes it.
func ParseSelection(data []byte) (FacetSelection, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return FacetSelection{}, fmt.Errorf("failed to decode facet selection: %w", err)
	}

	resolved, err := resolvedSelectionSchema()
	if err != nil {
		return FacetSelection{}, err
	}
	if err := resolved.Validate(instance); err != nil {
		return FacetSelection{}, fmt.Errorf("invalid facet selection: %w", err)
	}

	var sel FacetSelection
	if err := json.Unmarshal(data, &sel); err != nil {
		return FacetSelection{}, fmt.Errorf("failed to decode facet selection: %w", err)
	}
	return sel, nil
}

// LoadSelection reads a facet selection file. An empty path yields the zero selection.
func LoadSelection(path string) (FacetSelection, error) {
	if path == "" {
		return FacetSelection{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FacetSelection{}, fmt.Errorf("failed to read facet selection: %w", err)
	}
	return ParseSelection(data)
}
