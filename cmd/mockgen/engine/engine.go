package engine

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"architect-report/internal/leanix"

	"github.com/google/uuid"
)

type GeneratorConfig struct {
	Scenario     string // "mild", "sparse" or "chaos"
	Distribution string // "uniform" or "weibull"
	Count        int    // fact sheets
	Architects   int
	Seed         uint64
}

var firstNames = []string{"Ada", "Grace", "Linus", "Barbara", "Ken", "Margaret", "Dennis", "Frances", "Alan", "Radia"}
var lastNames = []string{"Lovelace", "Hopper", "Torvalds", "Liskov", "Thompson", "Hamilton", "Ritchie", "Allen", "Kay", "Perlman"}

var roleNames = []string{leanix.ProductAreaArchitect, leanix.ProductFamilyArchitect, "Business Owner", "Application Owner"}

// Generate builds a synthetic pathfinder response for the architect subscription query.
func Generate(cfg GeneratorConfig) (leanix.GraphQLResponse, error) {
	if cfg.Architects <= 0 {
		cfg.Architects = 8
	}
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:], cfg.Seed)
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)
	ids := func() string { return uuid.Must(uuid.NewRandomFromReader(src)).String() }

	users := make([]leanix.UserDTO, cfg.Architects)
	for i := range users {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames)+i)%len(lastNames)]
		u := leanix.UserDTO{
			ID:        ids(),
			FirstName: first,
			Email:     fmt.Sprintf("%s.%s%d@example.com", first, last, i),
		}
		// Every fourth user has no last name and is shown by email.
		if i%4 != 3 {
			u.LastName = &last
		}
		users[i] = u
	}

	var data leanix.AllFactSheetsData
	data.AllFactSheets.TotalCount = cfg.Count
	for i := 0; i < cfg.Count; i++ {
		node := leanix.FactSheetNode{
			ID:          ids(),
			DisplayName: fmt.Sprintf("IT Component %03d", i+1),
			Completion:  &leanix.CompletionDTO{},
		}
		pct := samplePercentage(rng, cfg, float64(i)/float64(max(cfg.Count, 1)))
		if pct != nil {
			ratio := *pct / 100
			node.Completion.Completion = &ratio
			node.Completion.Percentage = pct
		} else if rng.IntN(2) == 0 {
			node.Completion = nil
		}

		for _, u := range pickUsers(rng, users) {
			node.Subscriptions.Edges = append(node.Subscriptions.Edges, leanix.SubscriptionEdge{
				Node: sampleSubscription(rng, cfg, u),
			})
		}
		data.AllFactSheets.Edges = append(data.AllFactSheets.Edges, leanix.FactSheetEdge{Node: node})
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return leanix.GraphQLResponse{}, fmt.Errorf("failed to encode fact sheets: %w", err)
	}
	return leanix.GraphQLResponse{Data: raw}, nil
}

// samplePercentage returns nil for fact sheets without completion data.
func samplePercentage(rng *rand.Rand, cfg GeneratorConfig, progress float64) *float64 {
	missing := 0.05
	switch cfg.Scenario {
	case "sparse":
		missing = 0.3
	case "chaos":
		missing = 0.15
	}
	if rng.Float64() < missing {
		return nil
	}

	var pct float64
	if cfg.Distribution == "weibull" {
		k, lambda := 2.5, 70.0
		if cfg.Scenario == "sparse" {
			lambda = 30.0
		}
		if cfg.Scenario == "chaos" {
			k = 0.8 + 1.7*progress
		}
		pct = weibullSample(rng, k, lambda)
	} else {
		pct = 40 + rng.Float64()*60
		if cfg.Scenario == "sparse" {
			pct = rng.Float64() * 60
		}
		if cfg.Scenario == "chaos" {
			pct = rng.Float64() * 100
		}
	}
	// Completed fact sheets are common enough to deserve their own bucket.
	if rng.Float64() < 0.1 {
		pct = 100
	}
	pct = math.Round(math.Min(pct, 100)*10) / 10
	return &pct
}

func pickUsers(rng *rand.Rand, users []leanix.UserDTO) []leanix.UserDTO {
	n := rng.IntN(min(3, len(users)) + 1)
	perm := rng.Perm(len(users))[:n]
	picked := make([]leanix.UserDTO, n)
	for i, p := range perm {
		picked[i] = users[p]
	}
	return picked
}

func sampleSubscription(rng *rand.Rand, cfg GeneratorConfig, u leanix.UserDTO) leanix.SubscriptionNode {
	sub := leanix.SubscriptionNode{User: u, Type: leanix.ResponsibleType}
	noise := 0.1
	if cfg.Scenario == "chaos" {
		noise = 0.4
	}
	if rng.Float64() < noise {
		sub.Type = []string{"ACCOUNTABLE", "OBSERVER"}[rng.IntN(2)]
	}
	for _, idx := range rng.Perm(len(roleNames))[:rng.IntN(3)] {
		sub.Roles = append(sub.Roles, leanix.RoleDTO{ID: fmt.Sprintf("role-%d", idx), Name: roleNames[idx]})
	}
	return sub
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes resp as a fixture readable by leanix.NewFixtureClient and returns its path.
func Save(outDir string, name string, resp leanix.GraphQLResponse) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, name+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return "", fmt.Errorf("failed to write fixture: %w", err)
	}
	return path, f.Close()
}
