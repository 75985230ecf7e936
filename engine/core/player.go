package core

import (
	"fmt"
	"strings"
)

// Side identifies one of the two participants
type Side uint8

const (
	Player Side = iota
	Opponent
)

// Sides lists both participants in index order.
var Sides = [2]Side{Player, Opponent}

func (s Side) String() string {
	switch s {
	case Player:
		return "player"
	case Opponent:
		return "ai"
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// Valid reports whether s is a known side.
func (s Side) Valid() bool { return s == Player || s == Opponent }

// MustValid panics on an unknown side.
func (s Side) MustValid() Side {
	if !s.Valid() {
		panic(fmt.Sprintf("core: invalid side %d", uint8(s)))
	}
	return s
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Player {
		return Opponent
	}
	return Player
}

// Resources is a side's economy
type Resources struct {
	Minerals  float64 `json:"minerals"`
	Gas       float64 `json:"gas"`
	Supply    float64 `json:"supply"`
	MaxSupply float64 `json:"max_supply"`
}

// CanAfford returns true if both costs are covered
func (r *Resources) CanAfford(minerals, gas float64) bool {
	return r.Minerals >= minerals && r.Gas >= gas
}

// Spend deducts a cost.
func (r *Resources) Spend(minerals, gas float64) {
	r.Minerals -= minerals
	r.Gas -= gas
}

// SupplyFree reports whether cost more supply fits under the cap.
func (r *Resources) SupplyFree(cost float64) bool {
	return r.Supply+cost <= r.MaxSupply
}

// BuildOrder is a pending structure placement owned by a worker.
type BuildOrder struct {
	Worker   EntityID
	Type     string
	X, Y     float64
	Building *Entity
	Geyser   *Resource
}

// Difficulty selects the computer opponent's tuning
type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
	Insane
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	case Insane:
		return "insane"
	}
	return fmt.Sprintf("difficulty(%d)", uint8(d))
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal", "":
		return Normal, nil
	case "hard":
		return Hard, nil
	case "insane":
		return Insane, nil
	}
	return Normal, fmt.Errorf("unknown difficulty %q", s)
}
