package engine

import "encoding/json"

// Vec is a 2D point; segments of a player's trailing body are Vecs.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Skin is the appearance descriptor a client picks for its snake.
type Skin struct {
	Colors []string `json:"colors"`
}

// DefaultSkin returns the skin used when a client reports none.
func DefaultSkin() Skin {
	return Skin{Colors: []string{"#00ff88"}}
}

// LifeState is the player's alive/dead state. Only the two transitions
// Alive->Dead (death) and Dead->Alive (respawn) exist; calls that would
// repeat a state are no-ops.
type LifeState uint8

const (
	Alive LifeState = iota
	Dead
)

// String returns "alive" or "dead".
func (s LifeState) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

// MarshalJSON encodes the state as the wire "isDead" boolean.
func (s LifeState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s == Dead)
}

// UnmarshalJSON decodes the wire "isDead" boolean.
func (s *LifeState) UnmarshalJSON(data []byte) error {
	var dead bool
	if err := json.Unmarshal(data, &dead); err != nil {
		return err
	}
	if dead {
		*s = Dead
	} else {
		*s = Alive
	}
	return nil
}

// Player is one connected client's snake within a room, keyed by the opaque
// connection ID. The server stores what the client last reported.
type Player struct {
	Name       string    `json:"name"`
	Skin       Skin      `json:"skin"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Angle      float64   `json:"angle"`
	Segments   []Vec     `json:"segments"`
	Score      int       `json:"score"`
	Kills      int       `json:"kills"`
	State      LifeState `json:"isDead"`
	IsBoosting bool      `json:"isBoosting"`
}

// PlayerUpdate is a client-reported movement frame.
type PlayerUpdate struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Angle      float64 `json:"angle"`
	Segments   []Vec   `json:"segments"`
	Score      int     `json:"score"`
	IsBoosting bool    `json:"isBoosting"`
}

// EatResult is returned by a successful EatFood call: the replacement food
// tagged with its index, and the eater's updated score.
type EatResult struct {
	NewFood IndexedFood `json:"newFood"`
	Score   int         `json:"score"`
}
