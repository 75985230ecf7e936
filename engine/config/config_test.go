package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1siamBot/rts-sim/engine/core"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "match.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Level() != core.Normal {
		t.Fatalf("expected normal difficulty, got %v", cfg.Level())
	}
	if cfg.MaxStep() != 50*time.Millisecond {
		t.Fatalf("expected 50ms max step, got %v", cfg.MaxStep())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeFile(t, `
faction: zerg
opponent_faction: protoss
difficulty: insane
seed: 77
map:
  width: 1600
observer:
  addr: 127.0.0.1:8090
  every_ticks: 3
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Faction != "zerg" || cfg.OpponentFaction != "protoss" || cfg.Seed != 77 {
		t.Fatalf("unexpected match %+v", cfg)
	}
	if cfg.Level() != core.Insane {
		t.Fatalf("expected insane, got %v", cfg.Level())
	}
	if cfg.Map.Width != 1600 || cfg.Map.Height != 2400 {
		t.Fatalf("expected height to keep its default, got %+v", cfg.Map)
	}
	if cfg.TickRateHz != 60 || cfg.TickInterval() != time.Second/60 {
		t.Fatalf("expected default tick rate, got %d", cfg.TickRateHz)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"faction":    "faction: orcs\n",
		"difficulty": "difficulty: brutal\n",
		"map":        "map: {width: 100, height: 100}\n",
		"tick":       "tick_rate_hz: 0\n",
		"observer":   "observer: {addr: ':9000', every_ticks: 0}\n",
	}
	for name, body := range cases {
		if _, err := Load(writeFile(t, body)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}

	_, err := Load(writeFile(t, "faction: [\n"))
	if err == nil || !strings.Contains(err.Error(), "match.yaml") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}
