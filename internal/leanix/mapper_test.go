package leanix

import (
	"encoding/json"
	"strings"
	"testing"

	"architect-report/internal/completion"
	"architect-report/internal/report"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestDisplayName(t *testing.T) {
	tests := []struct {
		user UserDTO
		want string
	}{
		{UserDTO{FirstName: "Ada", LastName: strPtr("Lovelace"), Email: "ada@example.com"}, "Ada Lovelace"},
		{UserDTO{FirstName: "Ada", Email: "ada@example.com"}, "ada@example.com"},
		{UserDTO{FirstName: "Ada", LastName: strPtr(""), Email: "ada@example.com"}, "Ada "},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.user); got != tt.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestIsArchitectSubscription(t *testing.T) {
	tests := []struct {
		name string
		sub  SubscriptionNode
		want bool
	}{
		{"area architect", SubscriptionNode{Type: "RESPONSIBLE", Roles: []RoleDTO{{Name: ProductAreaArchitect}}}, true},
		{"family architect among roles", SubscriptionNode{Type: "RESPONSIBLE", Roles: []RoleDTO{{Name: "Owner"}, {Name: ProductFamilyArchitect}}}, true},
		{"accountable", SubscriptionNode{Type: "ACCOUNTABLE", Roles: []RoleDTO{{Name: ProductAreaArchitect}}}, false},
		{"no roles", SubscriptionNode{Type: "RESPONSIBLE"}, false},
		{"other role", SubscriptionNode{Type: "RESPONSIBLE", Roles: []RoleDTO{{Name: "Enterprise Architect"}}}, false},
	}

	for _, tt := range tests {
		if got := IsArchitectSubscription(tt.sub); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func subscription(id, first string, last *string, typ string, roles ...string) SubscriptionEdge {
	node := SubscriptionNode{
		User: UserDTO{ID: id, FirstName: first, LastName: last, Email: id + "@example.com"},
		Type: typ,
	}
	for _, r := range roles {
		node.Roles = append(node.Roles, RoleDTO{Name: r})
	}
	return SubscriptionEdge{Node: node}
}

func TestExtractRecords(t *testing.T) {
	var data AllFactSheetsData
	data.AllFactSheets.Edges = []FactSheetEdge{
		{Node: FactSheetNode{
			ID:         "fs1",
			Completion: &CompletionDTO{Percentage: floatPtr(100)},
			Subscriptions: SubscriptionConnection{Edges: []SubscriptionEdge{
				subscription("u1", "Ada", strPtr("Lovelace"), "RESPONSIBLE", ProductAreaArchitect, ProductFamilyArchitect),
				subscription("u2", "Bob", nil, "OBSERVER", ProductAreaArchitect),
			}},
		}},
		{Node: FactSheetNode{
			ID: "fs2",
			Subscriptions: SubscriptionConnection{Edges: []SubscriptionEdge{
				subscription("u2", "Bob", nil, "RESPONSIBLE", ProductFamilyArchitect),
			}},
		}},
		{Node: FactSheetNode{
			ID:         "fs3",
			Completion: &CompletionDTO{Percentage: floatPtr(0)},
			Subscriptions: SubscriptionConnection{Edges: []SubscriptionEdge{
				subscription("u1", "Ada", strPtr("Lovelace"), "RESPONSIBLE", ProductAreaArchitect),
			}},
		}},
	}

	want := []report.Record{
		{PersonID: "u1", PersonName: "Ada Lovelace", Level: completion.Complete},
		{PersonID: "u2", PersonName: "u2@example.com", Level: completion.Empty},
		{PersonID: "u1", PersonName: "Ada Lovelace", Level: completion.Low},
	}
	if diff := cmp.Diff(want, ExtractRecords(&data)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRecords_Empty(t *testing.T) {
	if got := ExtractRecords(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty records for nil data, got %#v", got)
	}
}

func TestQueryVariables(t *testing.T) {
	vars := QueryVariables(FacetSelection{DirectHits: []DirectHit{{ID: "a"}, {ID: "b"}}})

	filter := vars["filter"].(map[string]any)
	if diff := cmp.Diff(DefaultFacetFilters(), filter["facetFilters"]); diff != "" {
		t.Errorf("expected default facets (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, filter["ids"]); diff != "" {
		t.Errorf("ids mismatch:\n%s", diff)
	}
	if _, ok := filter["fullTextSearch"]; ok {
		t.Error("empty search term should be omitted")
	}

	encoded, err := json.Marshal(vars)
	if err != nil {
		t.Fatalf("variables not encodable: %v", err)
	}
	if !strings.Contains(string(encoded), `"maxFacetDepth":5`) || !strings.Contains(string(encoded), `"key":"displayName"`) {
		t.Errorf("unexpected variables: %s", encoded)
	}
}

func TestQueryVariables_ExplicitEmptyFacets(t *testing.T) {
	vars := QueryVariables(FacetSelection{Facets: []FacetFilter{}})
	facets := vars["filter"].(map[string]any)["facetFilters"].([]FacetFilter)
	if len(facets) != 0 {
		t.Errorf("explicit empty facet list must not fall back to defaults, got %+v", facets)
	}
}

func TestSubscriptionQuery_PageSize(t *testing.T) {
	if q := SubscriptionQuery(25); !strings.Contains(q, "first: 25,") {
		t.Errorf("page size not applied: %s", q)
	}
}

func TestSubscriptionFilters(t *testing.T) {
	filters := SubscriptionFilters("u42")
	if len(filters) != 4 {
		t.Fatalf("expected defaults plus subscription facet, got %d filters", len(filters))
	}
	last := filters[3]
	if last.FacetKey != "Subscriptions" || last.Operator != OperatorOR || len(last.Keys) != 1 || last.Keys[0] != "u42" {
		t.Errorf("unexpected subscription facet: %+v", last)
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection([]byte(`{
		"facets": [{"facetKey": "lifecycle", "operator": "OR", "keys": ["active"]}],
		"fullTextSearchTerm": "db",
		"directHits": [{"id": "x"}]
	}`))
	if err != nil {
		t.Fatalf("ParseSelection failed: %v", err)
	}
	want := FacetSelection{
		Facets:             []FacetFilter{{FacetKey: "lifecycle", Operator: "OR", Keys: []string{"active"}}},
		FullTextSearchTerm: "db",
		DirectHits:         []DirectHit{{ID: "x"}},
	}
	if diff := cmp.Diff(want, sel); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	invalid := []string{
		`not json`,
		`{"facets": [{"facetKey": "lifecycle", "operator": "XOR", "keys": ["active"]}]}`,
		`{"facets": [{"operator": "OR", "keys": ["active"]}]}`,
		`{"fullTextSearchTerm": 5}`,
	}
	for _, doc := range invalid {
		if _, err := ParseSelection([]byte(doc)); err == nil {
			t.Errorf("expected validation error for %s", doc)
		}
	}
}

func TestLoadSelection_EmptyPath(t *testing.T) {
	sel, err := LoadSelection("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Facets != nil {
		t.Errorf("expected zero selection, got %+v", sel)
	}
}
