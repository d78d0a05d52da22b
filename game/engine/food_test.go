package engine

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestGeneratorCreateBounds(t *testing.T) {
	gen := NewGenerator(DefaultMapSize, testRand())

	validKinds := map[FoodKind]bool{
		FoodNormal: true,
		FoodGold:   true,
		FoodSpeed:  true,
		FoodShield: true,
		FoodMega:   true,
	}

	for i := 0; i < 1000; i++ {
		f := gen.Create()

		if math.Abs(f.X) > DefaultMapSize || math.Abs(f.Y) > DefaultMapSize {
			t.Fatalf("Food position (%v, %v) outside arena bounds ±%d", f.X, f.Y, DefaultMapSize)
		}
		if !validKinds[f.Kind] {
			t.Fatalf("Unknown food kind %q", f.Kind)
		}
		if f.Value <= 0 {
			t.Fatalf("Food value should be positive, got %d", f.Value)
		}
		if f.Color == "" {
			t.Fatal("Food color should never be empty")
		}
	}
}

func TestGeneratorCreateDistribution(t *testing.T) {
	gen := NewGenerator(DefaultMapSize, testRand())

	const draws = 10000
	counts := make(map[FoodKind]int)
	for i := 0; i < draws; i++ {
		counts[gen.Create().Kind]++
	}

	expected := map[FoodKind]float64{
		FoodNormal: 0.70,
		FoodGold:   0.15,
		FoodSpeed:  0.05,
		FoodShield: 0.05,
		FoodMega:   0.05,
	}

	// 3 percentage points of sampling tolerance on 10k draws.
	const tolerance = 0.03
	for kind, want := range expected {
		got := float64(counts[kind]) / draws
		if math.Abs(got-want) > tolerance {
			t.Errorf("Kind %s: got frequency %.3f, want %.2f ± %.2f", kind, got, want, tolerance)
		}
	}
}

func TestGeneratorCreateColors(t *testing.T) {
	gen := NewGenerator(DefaultMapSize, testRand())

	fixed := map[FoodKind]string{
		FoodGold:   "#ffd700",
		FoodSpeed:  "#00ffff",
		FoodShield: "#4169e1",
		FoodMega:   "#ff00ff",
	}

	normalColors := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		f := gen.Create()
		if f.Kind == FoodNormal {
			if !strings.HasPrefix(f.Color, "hsl(") {
				t.Fatalf("Normal food should have an hsl color, got %q", f.Color)
			}
			normalColors[f.Color] = true
			continue
		}
		if want := fixed[f.Kind]; f.Color != want {
			t.Fatalf("Kind %s: got color %q, want %q", f.Kind, f.Color, want)
		}
	}

	// Each normal item gets a fresh random hue; the color set must not
	// collapse to a single value.
	if len(normalColors) < 2 {
		t.Errorf("Expected varied normal food colors, got %d distinct", len(normalColors))
	}
}

func TestGeneratorGenerateCount(t *testing.T) {
	gen := NewGenerator(DefaultMapSize, testRand())

	food := gen.Generate(DefaultFoodCount)
	if len(food) != DefaultFoodCount {
		t.Errorf("Expected %d food items, got %d", DefaultFoodCount, len(food))
	}
}

func TestGeneratorFallbackClass(t *testing.T) {
	// The cumulative weights sum to 1.0; a draw past the last threshold
	// (only reachable through rounding) must land on the last enumerated
	// class, not the first.
	last := foodClasses[len(foodClasses)-1]
	if last.kind != FoodMega {
		t.Fatalf("Expected mega to be the last enumerated class, got %s", last.kind)
	}

	total := 0.0
	for _, fc := range foodClasses {
		total += fc.chance
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("Expected weights to sum to 1.0, got %v", total)
	}
}
