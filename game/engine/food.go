package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// FoodKind identifies a food category.
type FoodKind string

const (
	FoodNormal FoodKind = "normal"
	FoodGold   FoodKind = "gold"
	FoodSpeed  FoodKind = "speed"
	FoodShield FoodKind = "shield"
	FoodMega   FoodKind = "mega"
)

// Food is a consumable point entity. Wire field names match the browser
// client's compact format.
type Food struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Value int      `json:"val"`
	Size  float64  `json:"s"`
	Color string   `json:"c"`
	Kind  FoodKind `json:"type"`
}

// IndexedFood is a food item tagged with its slot in the room's food list.
type IndexedFood struct {
	Index int `json:"index"`
	Food
}

// foodClass describes one category of the weighted food table. A class with
// an empty color receives a fresh random hue per generated item.
type foodClass struct {
	kind   FoodKind
	color  string
	value  int
	size   float64
	chance float64
}

var foodClasses = []foodClass{
	{FoodNormal, "", 1, 4.5, 0.70},
	{FoodGold, "#ffd700", 10, 12, 0.15},
	{FoodSpeed, "#00ffff", 5, 10, 0.05},
	{FoodShield, "#4169e1", 3, 10, 0.05},
	{FoodMega, "#ff00ff", 50, 18, 0.05},
}

// Generator produces randomized food items for one arena.
type Generator struct {
	mapSize float64
	rng     *rand.Rand
}

// NewGenerator creates a food generator for an arena of the given half-extent.
// A nil rng gets a time-seeded source.
func NewGenerator(mapSize float64, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{mapSize: mapSize, rng: rng}
}

// Create returns one food item with a weighted random category and a uniform
// random position over [-mapSize, mapSize] on both axes.
func (g *Generator) Create() Food {
	// Cumulative-sum sampling against one uniform draw. A draw that lands
	// past the last cumulative threshold (possible if the weights round
	// below 1.0) selects the last enumerated class.
	class := foodClasses[len(foodClasses)-1]
	draw := g.rng.Float64()
	cumulative := 0.0
	for _, fc := range foodClasses {
		cumulative += fc.chance
		if draw < cumulative {
			class = fc
			break
		}
	}

	color := class.color
	if color == "" {
		color = fmt.Sprintf("hsl(%d, 90%%, 70%%)", g.rng.Intn(360))
	}

	return Food{
		X:     (g.rng.Float64() - 0.5) * g.mapSize * 2,
		Y:     (g.rng.Float64() - 0.5) * g.mapSize * 2,
		Value: class.value,
		Size:  class.size,
		Color: color,
		Kind:  class.kind,
	}
}

// Generate returns count independent food items. There is no deduplication
// and no minimum-distance constraint between items.
func (g *Generator) Generate(count int) []Food {
	food := make([]Food, 0, count)
	for i := 0; i < count; i++ {
		food = append(food, g.Create())
	}
	return food
}
