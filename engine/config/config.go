package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/maplib"
	"github.com/1siamBot/rts-sim/engine/techtree"
)

// Match describes one match and how the drivers run it
type Match struct {
	Faction         string   `yaml:"faction"`
	OpponentFaction string   `yaml:"opponent_faction,omitempty"`
	Difficulty      string   `yaml:"difficulty"`
	Seed            int64    `yaml:"seed"`
	Map             MapSpec  `yaml:"map"`
	MaxStepMs       float64  `yaml:"max_step_ms"`
	TickRateHz      int      `yaml:"tick_rate_hz"`
	Observer        Observer `yaml:"observer"`
	Verbose         bool     `yaml:"verbose"`
}

type MapSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Observer configures the websocket state feed. An empty Addr disables it.
type Observer struct {
	Addr       string `yaml:"addr"`
	EveryTicks int    `yaml:"every_ticks"`
}

// Defaults returns a terran match on the standard map against a normal
// opponent. A zero seed means "pick one at start".
func Defaults() Match {
	return Match{
		Faction:    techtree.Terran,
		Difficulty: core.Normal.String(),
		Map:        MapSpec{Width: maplib.DefaultWidth, Height: maplib.DefaultHeight},
		MaxStepMs:  50,
		TickRateHz: 60,
		Observer:   Observer{EveryTicks: 6},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (Match, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks factions, difficulty and numeric ranges
func (m Match) Validate() error {
	tt := techtree.NewTechTree()
	if _, ok := tt.Faction(m.Faction); !ok {
		return fmt.Errorf("unknown faction %q", m.Faction)
	}
	if m.OpponentFaction != "" {
		if _, ok := tt.Faction(m.OpponentFaction); !ok {
			return fmt.Errorf("unknown opponent_faction %q", m.OpponentFaction)
		}
	}
	if _, err := core.ParseDifficulty(m.Difficulty); err != nil {
		return err
	}
	// bases sit 150 px in from two corners
	if m.Map.Width < 640 || m.Map.Height < 480 {
		return fmt.Errorf("map %dx%d is smaller than 640x480", m.Map.Width, m.Map.Height)
	}
	if m.MaxStepMs <= 0 {
		return errors.New("max_step_ms must be positive")
	}
	if m.TickRateHz <= 0 || m.TickRateHz > 1000 {
		return fmt.Errorf("tick_rate_hz %d out of range 1..1000", m.TickRateHz)
	}
	if m.Observer.Addr != "" && m.Observer.EveryTicks <= 0 {
		return errors.New("observer.every_ticks must be positive")
	}
	return nil
}

// Level returns the parsed difficulty; Validate has already rejected bad names
func (m Match) Level() core.Difficulty {
	d, _ := core.ParseDifficulty(m.Difficulty)
	return d
}

// MaxStep is the engine's dt clamp as a duration
func (m Match) MaxStep() time.Duration {
	return time.Duration(m.MaxStepMs * float64(time.Millisecond))
}

// TickInterval is the headless driver's fixed tick period
func (m Match) TickInterval() time.Duration {
	return time.Second / time.Duration(m.TickRateHz)
}
