// Command foodstats prints quick, human-readable statistics about the food
// generator. It samples a large batch of draws and summarizes the empirical
// category distribution, value totals, and position bounds, flagging any
// category that drifts from its configured weight.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/mohamedskoko5454-creator/snake/game/engine"
)

var (
	samples = flag.Int("samples", 100000, "Number of food draws to sample")
	mapSize = flag.Float64("map-size", engine.DefaultMapSize, "Playfield half-extent")
	seed    = flag.Int64("seed", 0, "RNG seed (0 = time-based)")
)

// Expected category weights, matched against the empirical distribution.
var expectedWeights = map[engine.FoodKind]float64{
	engine.FoodNormal: 0.70,
	engine.FoodGold:   0.15,
	engine.FoodSpeed:  0.05,
	engine.FoodShield: 0.05,
	engine.FoodMega:   0.05,
}

// KindStats accumulates per-category tallies over a batch of draws.
type KindStats struct {
	Count      int
	TotalValue int
}

// BatchStats is the tally of one sampled batch.
type BatchStats struct {
	Total int
	Kinds map[engine.FoodKind]*KindStats
	MinX  float64
	MaxX  float64
	MinY  float64
	MaxY  float64
}

func main() {
	flag.Parse()

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}
	gen := engine.NewGenerator(*mapSize, rng)

	fmt.Printf("=== Food generator: %d draws, map size %.0f ===\n\n", *samples, *mapSize)

	stats := tally(gen, *samples)
	report(stats, *mapSize)
}

// tally draws n food items and accumulates category and bounds statistics.
func tally(gen *engine.Generator, n int) *BatchStats {
	stats := &BatchStats{
		Kinds: make(map[engine.FoodKind]*KindStats),
		MinX:  math.Inf(1),
		MaxX:  math.Inf(-1),
		MinY:  math.Inf(1),
		MaxY:  math.Inf(-1),
	}

	for i := 0; i < n; i++ {
		f := gen.Create()
		stats.Total++

		ks := stats.Kinds[f.Kind]
		if ks == nil {
			ks = &KindStats{}
			stats.Kinds[f.Kind] = ks
		}
		ks.Count++
		ks.TotalValue += f.Value

		stats.MinX = math.Min(stats.MinX, f.X)
		stats.MaxX = math.Max(stats.MaxX, f.X)
		stats.MinY = math.Min(stats.MinY, f.Y)
		stats.MaxY = math.Max(stats.MaxY, f.Y)
	}

	return stats
}

func report(stats *BatchStats, mapSize float64) {
	kinds := make([]engine.FoodKind, 0, len(stats.Kinds))
	for k := range stats.Kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return stats.Kinds[kinds[i]].Count > stats.Kinds[kinds[j]].Count
	})

	fmt.Println("Category distribution:")
	drifted := 0
	for _, k := range kinds {
		ks := stats.Kinds[k]
		observed := float64(ks.Count) / float64(stats.Total)
		expected := expectedWeights[k]
		marker := ""
		if drift(observed, expected) {
			marker = "  <-- drift"
			drifted++
		}
		fmt.Printf("  %-7s %8d  observed %.4f  expected %.4f  avg value %.2f%s\n",
			k, ks.Count, observed, expected,
			float64(ks.TotalValue)/float64(ks.Count), marker)
	}

	fmt.Printf("\nPosition bounds: x [%.1f, %.1f], y [%.1f, %.1f] (limit ±%.1f)\n",
		stats.MinX, stats.MaxX, stats.MinY, stats.MaxY, mapSize)

	if drifted > 0 {
		fmt.Printf("\nWARNING: %d categories drifted more than 1%% from their weight\n", drifted)
	} else {
		fmt.Println("\nAll categories within 1% of their configured weight")
	}
}

// drift reports whether an observed share is more than one percentage point
// away from its expected weight.
func drift(observed, expected float64) bool {
	return math.Abs(observed-expected) > 0.01
}
