package engine_test

import (
	"context"
	"encoding/json"
	"testing"

	"architect-report/cmd/mockgen/engine"
	"architect-report/internal/completion"
	"architect-report/internal/leanix"
	"architect-report/internal/report"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := engine.GeneratorConfig{Scenario: "chaos", Distribution: "weibull", Count: 40, Architects: 5, Seed: 7}

	a, err := engine.Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := engine.Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(a.Data) != string(b.Data) {
		t.Error("same seed produced different fixtures")
	}
}

func TestFixturePipeline(t *testing.T) {
	scenarios := []engine.GeneratorConfig{
		{Scenario: "mild", Distribution: "uniform", Count: 120, Architects: 6, Seed: 1},
		{Scenario: "sparse", Distribution: "weibull", Count: 80, Architects: 3, Seed: 2},
		{Scenario: "chaos", Distribution: "uniform", Count: 60, Architects: 12, Seed: 3},
	}

	for _, cfg := range scenarios {
		t.Run(cfg.Scenario, func(t *testing.T) {
			resp, err := engine.Generate(cfg)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			path, err := engine.Save(t.TempDir(), "fixture", resp)
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			var data leanix.AllFactSheetsData
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				t.Fatalf("generated data not decodable: %v", err)
			}
			if len(data.AllFactSheets.Edges) != cfg.Count {
				t.Fatalf("expected %d fact sheets, got %d", cfg.Count, len(data.AllFactSheets.Edges))
			}

			wantPairs := 0
			for _, e := range data.AllFactSheets.Edges {
				for _, s := range e.Node.Subscriptions.Edges {
					if leanix.IsArchitectSubscription(s.Node) {
						wantPairs++
					}
				}
			}

			inv := leanix.NewInventory(leanix.NewFixtureClient(path), 0, nil)
			records, err := inv.FetchRecords(context.Background(), leanix.FacetSelection{})
			if err != nil {
				t.Fatalf("FetchRecords failed: %v", err)
			}
			rep := report.Build(records)

			total := 0
			for _, p := range rep.People {
				total += p.Total()
			}
			if total != wantPairs {
				t.Errorf("counts sum to %d, expected %d architect subscriptions", total, wantPairs)
			}
			if len(rep.People) > cfg.Architects {
				t.Errorf("more people (%d) than generated users (%d)", len(rep.People), cfg.Architects)
			}
			for _, l := range rep.Levels {
				if !l.Known() {
					t.Errorf("generator produced unknown level %d", l)
				}
				if _, ok := completion.Label(l); !ok {
					t.Errorf("level %d has no label", l)
				}
			}
			for _, s := range rep.Series {
				if len(s.Values) != len(rep.People) {
					t.Errorf("series %s has %d values for %d people", s.Label, len(s.Values), len(rep.People))
				}
			}
		})
	}
}
