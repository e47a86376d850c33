package leanix

import "fmt"

// DefaultPageSize is the number of fact sheets requested in one query.
const DefaultPageSize = 3000

const allFactSheetsQuery = `query allFactSheetsQuery($filter: FilterInput!, $sortings: [Sorting]) {
  allFactSheets(first: %d, filter: $filter, sort: $sortings) {
    totalCount
    edges {
      node {
        id
        displayName
        ... on ITComponent {
          completion { completion percentage }
          subscriptions {
            edges {
              node {
                user { id firstName lastName email }
                type
                roles { id name }
              }
            }
          }
        }
      }
    }
  }
}`

// SubscriptionQuery returns the GraphQL document selecting IT components with
// their completion and subscriptions.
func SubscriptionQuery(pageSize int) string {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return fmt.Sprintf(allFactSheetsQuery, pageSize)
}

// QueryVariables builds the variables of SubscriptionQuery for a selection.
func QueryVariables(sel FacetSelection) map[string]any {
	filter := map[string]any{
		"responseOptions": map[string]any{
			"maxFacetDepth": 5,
		},
		"facetFilters": sel.FacetFiltersOrDefault(),
	}
	if len(sel.DirectHits) > 0 {
		ids := make([]string, len(sel.DirectHits))
		for i, hit := range sel.DirectHits {
			ids[i] = hit.ID
		}
		filter["ids"] = ids
	}
	if sel.FullTextSearchTerm != "" {
		filter["fullTextSearch"] = sel.FullTextSearchTerm
	}

	return map[string]any{
		"filter": filter,
		"sortings": []map[string]any{
			{"key": "displayName", "order": "asc"},
		},
	}
}
