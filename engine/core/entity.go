package core

import "math"

// EntityID uniquely identifies an entity within a match
type EntityID uint64

// Point is a world-space position in pixels
type Point struct {
	X, Y float64
}

// Waypoint is a point along a computed path
type Waypoint = Point

// Entity is a unit or building. The gameplay fields are grouped into
// embedded structs so the engine can address them as e.HP, e.Path, etc.
type Entity struct {
	ID         EntityID
	Type       string
	Side       Side
	Faction    string
	IsBuilding bool
	X, Y       float64
	Size       float64
	Vision     float64
	Selected   bool

	Combat
	Movement
	Orders
	Harvest
	Production
	Construction
	AbilityState

	reaped bool
}

// Combat holds health and weapon stats.
type Combat struct {
	HP, MaxHP         float64
	Shield, MaxShield float64
	Armor             float64
	Damage            float64
	Hits              int
	Bonus             *DamageBonus
	Range             float64 // pixels
	AttackSpeed       float64 // ms between attacks
	Splash            float64
	Projectile        string
	LastAttack        float64
	LastHit           float64
}

// DamageBonus is extra damage per hit against an armor class
type DamageBonus struct {
	Class  string // "armored" or "light"
	Amount float64
}

// Movement holds path following state.
type Movement struct {
	Speed     float64 // tiles per second
	Path      []Waypoint
	PathIndex int
	VX, VY    float64
	Flying    bool
	Sieged    bool
}

// Orders holds targeting and queued commands.
type Orders struct {
	Target     *Entity
	AttackMove bool
	Hold       bool
	Patrol     *PatrolRoute
	Queue      []Command
}

// PatrolRoute is a two-point patrol loop.
type PatrolRoute struct {
	X1, Y1, X2, Y2 float64
	ToSecond       bool
}

// Harvest holds worker gathering state.
type Harvest struct {
	CanHarvest      bool
	Harvesting      *Resource
	Carrying        float64
	Returning       bool
	HarvestCooldown float64
}

// Production holds a building's training state.
type Production struct {
	Produces        []string
	Producing       string
	ProductionEnd   float64
	ProductionQueue []string
	Rally           *Point
}

// Construction holds build progress for buildings and the active order for workers.
type Construction struct {
	CanBuild      bool
	Built         float64 // 0..1
	BuildProgress float64 // ms
	BuildTotal    float64 // ms
	Constructing  *BuildOrder
}

// AbilityState holds ability keys, cooldowns, energy and buffs.
type AbilityState struct {
	Abilities []string
	Cooldowns map[string]float64 // ability -> time it becomes ready
	Energy    float64
	MaxEnergy float64
	Buffs     []Buff
}

// Buff is a timed stat modifier
type Buff struct {
	Kind       string
	Expires    float64
	SpeedMult  float64
	AttackMult float64
}

// Alive reports whether the entity has positive hp and has not been reaped.
func (e *Entity) Alive() bool {
	return e != nil && e.HP > 0 && !e.reaped
}

// Reaped reports whether the entity was removed from the world.
func (e *Entity) Reaped() bool { return e.reaped }

// MarkReaped flags the entity as removed.
func (e *Entity) MarkReaped() { e.reaped = true }

// DistanceTo returns the Euclidean distance to another entity.
func (e *Entity) DistanceTo(o *Entity) float64 {
	return math.Hypot(o.X-e.X, o.Y-e.Y)
}

// DistanceToPoint returns the Euclidean distance to a point.
func (e *Entity) DistanceToPoint(x, y float64) float64 {
	return math.Hypot(x-e.X, y-e.Y)
}

// HasAbility reports whether key is one of the entity's abilities.
func (e *Entity) HasAbility(key string) bool {
	for _, a := range e.Abilities {
		if a == key {
			return true
		}
	}
	return false
}

// CanProduce reports whether the building lists unit among its products.
func (e *Entity) CanProduce(unit string) bool {
	for _, p := range e.Produces {
		if p == unit {
			return true
		}
	}
	return false
}

// SetPath replaces the current path.
func (e *Entity) SetPath(p []Waypoint) {
	e.Path = p
	e.PathIndex = 0
}

// ClearPath drops the current path.
func (e *Entity) ClearPath() {
	e.Path = nil
	e.PathIndex = 0
}

// Idle reports whether the entity has nothing to do.
func (e *Entity) Idle() bool {
	return len(e.Path) == 0 && e.Target == nil && len(e.Queue) == 0 && e.Constructing == nil
}

// ArmorClass returns the class used for damage bonuses, derived from footprint.
func (e *Entity) ArmorClass() string {
	switch {
	case e.Size > 18:
		return "armored"
	case e.Size < 14:
		return "light"
	}
	return ""
}
