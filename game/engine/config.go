package engine

import "fmt"

// Default arena tuning. The arena spans [-MapSize, MapSize] on both axes for
// food; players spawn in the inner half of that range.
const (
	DefaultMapSize   = 3800
	DefaultFoodCount = 500
)

// Config holds the per-room arena tuning.
type Config struct {
	// MapSize is the arena half-extent: food positions span
	// [-MapSize, MapSize] on both axes.
	MapSize float64 `json:"map_size"`

	// FoodCount is the number of food items a room starts with. Eating
	// replaces items in place; death drops append beyond this count.
	FoodCount int `json:"food_count"`
}

// DefaultConfig returns the standard arena tuning.
func DefaultConfig() *Config {
	return &Config{
		MapSize:   DefaultMapSize,
		FoodCount: DefaultFoodCount,
	}
}

// ValidateConfig checks that an arena configuration is usable.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if cfg.MapSize <= 0 {
		return fmt.Errorf("map size must be positive, got %v", cfg.MapSize)
	}
	if cfg.FoodCount <= 0 {
		return fmt.Errorf("food count must be positive, got %d", cfg.FoodCount)
	}
	return nil
}
