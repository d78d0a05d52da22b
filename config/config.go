package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mohamedskoko5454-creator/snake/game/engine"
	"github.com/mohamedskoko5454-creator/snake/game/session"
)

// Config holds everything the server needs to start.
type Config struct {
	Host         string
	Port         int
	PublicDir    string
	MapSize      float64
	FoodCount    int
	RoomCapacity int
}

// Load reads the configuration from the environment, filling in defaults for
// anything unset or malformed.
func Load() *Config {
	return &Config{
		Host:         getEnv("HOST", "localhost"),
		Port:         getEnvInt("PORT", 3000),
		PublicDir:    getEnv("PUBLIC_DIR", "public"),
		MapSize:      getEnvFloat("MAP_SIZE", engine.DefaultMapSize),
		FoodCount:    getEnvInt("FOOD_COUNT", engine.DefaultFoodCount),
		RoomCapacity: getEnvInt("ROOM_CAPACITY", session.DefaultCapacity),
	}
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Engine returns the per-room engine configuration.
func (c *Config) Engine() *engine.Config {
	return &engine.Config{
		MapSize:   c.MapSize,
		FoodCount: c.FoodCount,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
