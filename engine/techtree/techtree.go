package techtree

import (
	"fmt"
	"sort"
)

// BuildStyle is how a faction's workers raise structures
type BuildStyle uint8

const (
	// StyleWarp: the worker places the structure and is free at once.
	StyleWarp BuildStyle = iota
	// StyleMorph: the worker is consumed and becomes the structure.
	StyleMorph
	// StyleConstruct: the worker must stay nearby until the structure completes.
	StyleConstruct
)

func (s BuildStyle) String() string {
	switch s {
	case StyleWarp:
		return "warp"
	case StyleMorph:
		return "morph"
	case StyleConstruct:
		return "construct"
	}
	return fmt.Sprintf("style(%d)", uint8(s))
}

// Cost is a mineral and gas price
type Cost struct {
	Minerals, Gas float64
}

// Bonus is extra damage per hit against an armor class
type Bonus struct {
	Class  string
	Amount float64
}

// SiegeProfile replaces a unit's weapon while entrenched
type SiegeProfile struct {
	Damage      float64
	Range       float64 // tiles
	AttackSpeed float64
	Splash      float64
}

// UnitDef defines a unit type that can be produced
type UnitDef struct {
	ID          string
	Faction     string
	HP          float64
	Shield      float64
	Armor       float64
	Damage      float64
	Hits        int
	Bonus       *Bonus
	AttackSpeed float64 // ms
	Range       float64 // tiles
	Speed       float64 // tiles per second
	Size        float64
	Vision      float64 // tiles
	Cost        Cost
	BuildTime   float64 // seconds
	Supply      float64
	SupplyAdd   float64
	ProducedBy  string
	Prereqs     []string
	Projectile  string
	Splash      float64
	SpawnCount  int
	Energy      float64
	MaxEnergy   float64
	Flying      bool
	Harvester   bool
	Builder     bool
	Abilities   []string
	Siege       *SiegeProfile
	Hotkey      string
}

// BuildingDef defines a building type
type BuildingDef struct {
	ID            string
	Faction       string
	HP            float64
	Shield        float64
	Armor         float64
	Size          float64
	Vision        float64 // tiles
	Cost          Cost
	BuildTime     float64 // seconds
	SupplyAdd     float64
	Prereqs       []string
	CanProduce    []string
	Base          bool
	OnGeyser      bool
	ConsumeWorker bool
	Hotkey        string
}

// AbilityDef defines an activatable ability
type AbilityDef struct {
	ID         string
	Name       string
	Hotkey     string
	Cooldown   float64 // ms
	Range      float64 // tiles
	EnergyCost float64
	HPCost     float64
	Duration   float64 // ms
	SpeedMult  float64
	AttackMult float64
	Targeted   bool
}

// FactionDef names a faction's core types
type FactionDef struct {
	ID     string
	Name   string
	Worker string
	Base   string
	Supply string
	Gas    string
	Style  BuildStyle
}

// TechTree holds all definitions
type TechTree struct {
	Units     map[string]*UnitDef
	Buildings map[string]*BuildingDef
	Abilities map[string]*AbilityDef
	Factions  map[string]*FactionDef
}

// Unit looks up a unit definition
func (tt *TechTree) Unit(id string) (*UnitDef, bool) {
	u, ok := tt.Units[id]
	return u, ok
}

// Building looks up a building definition
func (tt *TechTree) Building(id string) (*BuildingDef, bool) {
	b, ok := tt.Buildings[id]
	return b, ok
}

// Ability looks up an ability definition
func (tt *TechTree) Ability(id string) (*AbilityDef, bool) {
	a, ok := tt.Abilities[id]
	return a, ok
}

// Faction looks up a faction
func (tt *TechTree) Faction(id string) (*FactionDef, bool) {
	f, ok := tt.Factions[id]
	return f, ok
}

// MustUnit panics on an unknown unit id. Unknown ids are programming errors.
func (tt *TechTree) MustUnit(id string) *UnitDef {
	u, ok := tt.Units[id]
	if !ok {
		panic(fmt.Sprintf("techtree: unknown unit %q", id))
	}
	return u
}

// MustBuilding panics on an unknown building id
func (tt *TechTree) MustBuilding(id string) *BuildingDef {
	b, ok := tt.Buildings[id]
	if !ok {
		panic(fmt.Sprintf("techtree: unknown building %q", id))
	}
	return b
}

// MustFaction panics on an unknown faction id
func (tt *TechTree) MustFaction(id string) *FactionDef {
	f, ok := tt.Factions[id]
	if !ok {
		panic(fmt.Sprintf("techtree: unknown faction %q", id))
	}
	return f
}

// HasPrereqs checks prerequisites against an owned-type predicate
func HasPrereqs(prereqs []string, owns func(string) bool) bool {
	for _, p := range prereqs {
		if !owns(p) {
			return false
		}
	}
	return true
}

// MissingPrereq returns the first unmet prerequisite, or ""
func MissingPrereq(prereqs []string, owns func(string) bool) string {
	for _, p := range prereqs {
		if !owns(p) {
			return p
		}
	}
	return ""
}

// BuildingsOf lists a faction's building ids in name order
func (tt *TechTree) BuildingsOf(faction string) []string {
	var out []string
	for id, b := range tt.Buildings {
		if b.Faction == faction {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// FactionIDs lists the faction ids in name order
func (tt *TechTree) FactionIDs() []string {
	out := make([]string, 0, len(tt.Factions))
	for id := range tt.Factions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Validate checks cross references: producers exist and list their units,
// prerequisites name known buildings.
func (tt *TechTree) Validate() error {
	for id, u := range tt.Units {
		if u.ID != id {
			return fmt.Errorf("unit %q has id %q", id, u.ID)
		}
		b, ok := tt.Buildings[u.ProducedBy]
		if !ok {
			return fmt.Errorf("unit %q: unknown producer %q", id, u.ProducedBy)
		}
		found := false
		for _, p := range b.CanProduce {
			found = found || p == id
		}
		if !found {
			return fmt.Errorf("unit %q: %q does not list it", id, u.ProducedBy)
		}
		for _, p := range u.Prereqs {
			if _, ok := tt.Buildings[p]; !ok {
				return fmt.Errorf("unit %q: unknown prerequisite %q", id, p)
			}
		}
		for _, a := range u.Abilities {
			if _, ok := tt.Abilities[a]; !ok {
				return fmt.Errorf("unit %q: unknown ability %q", id, a)
			}
		}
	}
	for id, b := range tt.Buildings {
		for _, p := range b.CanProduce {
			if _, ok := tt.Units[p]; !ok {
				return fmt.Errorf("building %q: unknown product %q", id, p)
			}
		}
		for _, p := range b.Prereqs {
			if _, ok := tt.Buildings[p]; !ok {
				return fmt.Errorf("building %q: unknown prerequisite %q", id, p)
			}
		}
	}
	for id, f := range tt.Factions {
		if _, ok := tt.Units[f.Worker]; !ok {
			return fmt.Errorf("faction %q: unknown worker %q", id, f.Worker)
		}
		if _, ok := tt.Buildings[f.Base]; !ok {
			return fmt.Errorf("faction %q: unknown base %q", id, f.Base)
		}
	}
	return nil
}
