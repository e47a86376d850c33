package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"architect-report/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, sparse, chaos")
	distribution := flag.String("distribution", "uniform", "Distribution to use: uniform, weibull")
	outDir := flag.String("out", "./.cache", "Output directory for the fixture")
	count := flag.Int("count", 200, "Number of fact sheets to generate")
	architects := flag.Int("architects", 8, "Number of distinct subscribed users")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Architects:   *architects,
		Seed:         *seed,
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Count: %d, Seed: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Count, cfg.Seed, *outDir)

	resp, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate mock data: %v\n", err)
		os.Exit(1)
	}

	path, err := engine.Save(*outDir, "LEANIXTEST_"+cfg.Scenario, resp)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Point LEANIX_FIXTURE at %s\n", path)
}
