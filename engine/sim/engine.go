package sim

import (
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/effects"
	"github.com/1siamBot/rts-sim/engine/maplib"
	"github.com/1siamBot/rts-sim/engine/pathfind"
	"github.com/1siamBot/rts-sim/engine/techtree"
)

const (
	// MaxStepMs caps a single Update step
	MaxStepMs = 50.0

	StartingMinerals = 50
	StartingWorkers  = 12

	energyRegen      = 0.5625 // per second
	shieldRegen      = 2.0    // per second
	shieldRegenDelay = 10000.0
	maxMessages      = 5
)

// Result is the outcome reported by Update
type Result uint8

const (
	None Result = iota
	Victory
	Defeat
)

func (r Result) String() string {
	switch r {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	}
	return ""
}

// Opponent drives the non-player side. It runs once per tick after the
// death sweep and issues orders through the engine's public API.
type Opponent interface {
	Update(e *Engine, dt float64)
}

// Message is a short notice for the player
type Message struct {
	Text string  `json:"text"`
	Time float64 `json:"time"`
}

// Engine owns the whole match state and advances it one tick at a time.
// It is not safe for concurrent use.
type Engine struct {
	m     *maplib.Map
	nav   *pathfind.NavGrid
	tt    *techtree.TechTree
	fog   *Fog
	fx    *effects.Manager
	bus   *core.EventBus
	log   *log.Logger
	rng   *rand.Rand
	wall  func() time.Time
	opp   Opponent
	debug bool

	maxStep       float64
	maxExpansions int

	factions      [2]*techtree.FactionDef
	forcedFaction string
	difficulty    core.Difficulty
	entities      []*core.Entity
	nextID        core.EntityID
	resources     [2]core.Resources
	owned         [2]map[string]int
	buildQueues   [2][]*core.BuildOrder

	selected     []*core.Entity
	groups       map[int][]core.EntityID
	lastGroupTap map[int]time.Time
	messages     []Message

	now    float64
	ticks  uint64
	result Result
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for match lifecycle and debug output
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.log = l } }

// WithSeed seeds the engine's random source
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithWallClock replaces time.Now for control-group double taps
func WithWallClock(now func() time.Time) Option { return func(e *Engine) { e.wall = now } }

// WithOpponent attaches the controller for the opponent side
func WithOpponent(o Opponent) Option { return func(e *Engine) { e.opp = o } }

// WithOpponentFaction fixes the opponent's faction instead of picking one at random
func WithOpponentFaction(id string) Option { return func(e *Engine) { e.forcedFaction = id } }

// WithEventBus shares an existing event bus
func WithEventBus(b *core.EventBus) Option { return func(e *Engine) { e.bus = b } }

// WithTechTree replaces the default tech tree
func WithTechTree(tt *techtree.TechTree) Option { return func(e *Engine) { e.tt = tt } }

// WithVerbose logs every spawn, death and rejected order
func WithVerbose(v bool) Option { return func(e *Engine) { e.debug = v } }

// WithMaxStep overrides the per-update step cap in ms
func WithMaxStep(ms float64) Option { return func(e *Engine) { e.maxStep = ms } }

// WithMaxExpansions overrides the A* closed-set budget
func WithMaxExpansions(n int) Option { return func(e *Engine) { e.maxExpansions = n } }

// New creates an engine for a map. Call Init before the first Update.
func New(m *maplib.Map, opts ...Option) *Engine {
	e := &Engine{
		m:             m,
		nav:           pathfind.NewNavGrid(m),
		tt:            techtree.NewTechTree(),
		fog:           NewFog(m.Width, m.Height),
		fx:            effects.NewManager(),
		bus:           core.NewEventBus(),
		log:           log.New(io.Discard, "", 0),
		rng:           rand.New(rand.NewSource(m.Seed)),
		wall:          time.Now,
		maxStep:       MaxStepMs,
		maxExpansions: pathfind.DefaultMaxExpansions,
		groups:        make(map[int][]core.EntityID),
		lastGroupTap:  make(map[int]time.Time),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init sets up both sides: a completed base, twelve workers in a ring, and the
// first eight workers assigned to mineral patches. The opponent plays a
// different faction than the player.
func (e *Engine) Init(faction string, difficulty core.Difficulty) error {
	if _, ok := e.tt.Faction(faction); !ok {
		return fmt.Errorf("%w: faction %q", ErrUnknownType, faction)
	}
	opponent := e.forcedFaction
	if opponent == "" {
		var others []string
		for _, id := range e.tt.FactionIDs() {
			if id != faction {
				others = append(others, id)
			}
		}
		opponent = others[e.rng.Intn(len(others))]
	}
	if _, ok := e.tt.Faction(opponent); !ok {
		return fmt.Errorf("%w: faction %q", ErrUnknownType, opponent)
	}
	e.difficulty = difficulty
	e.setup(faction, opponent)

	for _, side := range core.Sides {
		f := e.factions[side]
		bp := e.m.Base(side)
		base := e.spawn(f.Base, bp.X, bp.Y, side, true, 0)
		rallyY := bp.Y + 80
		if side == core.Opponent {
			rallyY = bp.Y - 80
		}
		base.Rally = &core.Point{X: bp.X, Y: rallyY}

		for i := 0; i < StartingWorkers; i++ {
			a := float64(i) / StartingWorkers * 2 * math.Pi
			w := e.spawn(f.Worker, bp.X+50*math.Cos(a), bp.Y+50*math.Sin(a), side, false, 0)
			if i >= 8 {
				continue
			}
			idx := i
			if side == core.Opponent {
				idx = len(e.m.Minerals) - 1 - i%8
			}
			if idx >= 0 && idx < len(e.m.Minerals) {
				r := e.m.Minerals[idx]
				w.Harvesting = r
				r.Assign(w.ID)
			}
		}
	}

	e.log.Printf("match start: %s vs %s (%s), map %dx%d seed %d",
		faction, opponent, difficulty, e.m.Width, e.m.Height, e.m.Seed)
	e.addMessage("Game started - Good luck, Commander!")
	return nil
}

// setup resets economy and faction state without spawning anything
func (e *Engine) setup(player, opponent string) {
	e.factions = [2]*techtree.FactionDef{e.tt.MustFaction(player), e.tt.MustFaction(opponent)}
	for _, s := range core.Sides {
		e.resources[s] = core.Resources{Minerals: StartingMinerals}
		e.owned[s] = make(map[string]int)
	}
}

// Update advances the simulation by dt ms (capped at the max step) and
// reports whether the match has ended. Events raised during the tick, and any
// raised by orders since the previous tick, are dispatched before it returns.
func (e *Engine) Update(dt float64) Result {
	if dt > e.maxStep {
		dt = e.maxStep
	}
	if dt < 0 {
		dt = 0
	}
	e.now += dt
	e.ticks++

	e.updateFog()
	for _, s := range core.Sides {
		e.processBuildQueue(s)
	}
	for _, ent := range e.entities {
		if ent.Alive() {
			e.updateEntity(ent, dt)
		}
	}
	e.resolveCollisions()
	e.fx.Update(e.now, dt, e.onProjectileHit)
	e.sweepDead()

	if e.opp != nil {
		e.opp.Update(e, dt)
	}
	r := e.checkResult()
	e.bus.Dispatch()
	return r
}

func (e *Engine) updateFog() {
	e.fog.clearVisible()
	for _, ent := range e.entities {
		if ent.Side == core.Player && ent.Alive() {
			e.fog.Reveal(ent.X, ent.Y, ent.Vision)
		}
	}
}

func (e *Engine) updateEntity(ent *core.Entity, dt float64) {
	if ent.MaxEnergy > 0 && ent.Energy < ent.MaxEnergy {
		ent.Energy = min(ent.MaxEnergy, ent.Energy+energyRegen*dt/1000)
	}
	if ent.Shield < ent.MaxShield && e.now-ent.LastHit > shieldRegenDelay {
		ent.Shield = min(ent.MaxShield, ent.Shield+shieldRegen*dt/1000)
	}

	if ent.IsBuilding && ent.Built < 1 {
		e.updateConstruction(ent, dt)
		return
	}

	if ent.Producing != "" && e.now >= ent.ProductionEnd {
		e.completeProduction(ent)
	}

	speedMult, attackMult := e.updateBuffs(ent)

	if !ent.IsBuilding && !ent.Hold && !ent.Sieged && len(ent.Path) > 0 {
		e.updateMovement(ent, dt, speedMult)
	}
	if ent.CanHarvest && ent.Harvesting != nil && ent.Constructing == nil {
		e.updateHarvesting(ent, dt)
	}
	if ent.Damage > 0 && !ent.CanHarvest && ent.Constructing == nil {
		e.updateCombat(ent, attackMult)
	}
}

// updateBuffs drops expired buffs and returns the combined multipliers
func (e *Engine) updateBuffs(ent *core.Entity) (speed, attack float64) {
	speed, attack = 1, 1
	live := ent.Buffs[:0]
	for _, b := range ent.Buffs {
		if b.Expires > e.now {
			live = append(live, b)
		}
	}
	ent.Buffs = live
	for _, b := range ent.Buffs {
		if b.SpeedMult > 0 {
			speed *= b.SpeedMult
		}
		if b.AttackMult > 0 {
			attack *= b.AttackMult
		}
	}
	return speed, attack
}

func (e *Engine) sweepDead() {
	for _, ent := range e.entities {
		if ent.HP <= 0 && !ent.Reaped() {
			e.onEntityDeath(ent)
			ent.MarkReaped()
		}
	}
	live := e.entities[:0]
	for _, ent := range e.entities {
		if !ent.Reaped() {
			live = append(live, ent)
		}
	}
	for i := len(live); i < len(e.entities); i++ {
		e.entities[i] = nil
	}
	e.entities = live

	sel := e.selected[:0]
	for _, ent := range e.selected {
		if !ent.Reaped() {
			sel = append(sel, ent)
		}
	}
	e.selected = sel
}

func (e *Engine) onEntityDeath(ent *core.Entity) {
	e.cue(core.SndDeath, ent.X, ent.Y)
	e.fx.AddEffect("death", ent.X, ent.Y, 600, 0, e.now)

	if ent.Harvesting != nil {
		ent.Harvesting.Unassign(ent.ID)
	}
	res := &e.resources[ent.Side]
	if ent.IsBuilding {
		d := e.tt.MustBuilding(ent.Type)
		if ent.Built >= 1 {
			e.owned[ent.Side][ent.Type]--
			res.MaxSupply -= d.SupplyAdd
		}
		if d.OnGeyser {
			if g := e.m.GeyserAt(ent.X, ent.Y, 1); g != nil {
				g.Occupied = false
			}
		}
	} else {
		d := e.tt.MustUnit(ent.Type)
		res.Supply -= d.Supply
		res.MaxSupply -= d.SupplyAdd
	}
	e.bus.Emit(core.Event{Type: core.EvtEntityDied, Time: e.now, Payload: ent})
	if e.debug {
		e.log.Printf("%s %s #%d died at (%.0f,%.0f)", ent.Side, ent.Type, ent.ID, ent.X, ent.Y)
	}
}

func (e *Engine) checkResult() Result {
	var alive [2]int
	for _, ent := range e.entities {
		if ent.Alive() {
			alive[ent.Side]++
		}
	}
	r := None
	switch {
	case alive[core.Player] == 0:
		r = Defeat
	case alive[core.Opponent] == 0:
		r = Victory
	}
	if r != None && e.result == None {
		e.result = r
		e.bus.Emit(core.Event{Type: core.EvtMatchEnd, Time: e.now, Payload: r})
		e.log.Printf("match over: %s after %.1fs", r, e.now/1000)
	}
	return r
}

// spawn creates an entity from the tech tree. A positive buildTime (ms) makes
// a building start unfinished at 10% hp.
func (e *Engine) spawn(typ string, x, y float64, side core.Side, isBuilding bool, buildTime float64) *core.Entity {
	side.MustValid()
	ent := &core.Entity{
		ID:         e.nextID,
		Type:       typ,
		Side:       side,
		Faction:    e.factions[side].ID,
		IsBuilding: isBuilding,
		X:          x,
		Y:          y,
	}
	e.nextID++
	res := &e.resources[side]

	if isBuilding {
		d := e.tt.MustBuilding(typ)
		ent.HP, ent.MaxHP = d.HP, d.HP
		ent.Shield, ent.MaxShield = d.Shield, d.Shield
		ent.Armor = d.Armor
		ent.Size = d.Size
		ent.Vision = d.Vision * maplib.TileSize
		ent.Produces = d.CanProduce
		ent.Hits = 1
		ent.Built = 1
		if buildTime > 0 {
			ent.HP = d.HP * 0.1
			ent.Built = 0
			ent.BuildTotal = buildTime
		} else {
			e.owned[side][typ]++
			res.MaxSupply += d.SupplyAdd
		}
	} else {
		d := e.tt.MustUnit(typ)
		ent.HP, ent.MaxHP = d.HP, d.HP
		ent.Shield, ent.MaxShield = d.Shield, d.Shield
		ent.Armor = d.Armor
		ent.Damage = d.Damage
		ent.Hits = max(1, d.Hits)
		if d.Bonus != nil {
			ent.Bonus = &core.DamageBonus{Class: d.Bonus.Class, Amount: d.Bonus.Amount}
		}
		ent.AttackSpeed = d.AttackSpeed
		ent.Range = d.Range * maplib.TileSize
		ent.Speed = d.Speed
		ent.Size = d.Size
		ent.Vision = d.Vision * maplib.TileSize
		ent.Projectile = d.Projectile
		ent.Splash = d.Splash
		ent.Flying = d.Flying
		ent.CanHarvest = d.Harvester
		ent.CanBuild = d.Builder
		ent.Energy, ent.MaxEnergy = d.Energy, d.MaxEnergy
		ent.Built = 1
		ent.Abilities = append([]string(nil), d.Abilities...)
		ent.Cooldowns = make(map[string]float64, len(d.Abilities))
		for _, a := range d.Abilities {
			ent.Cooldowns[a] = 0
		}
		res.Supply += d.Supply
		res.MaxSupply += d.SupplyAdd
	}

	e.entities = append(e.entities, ent)
	e.bus.Emit(core.Event{Type: core.EvtEntitySpawned, Time: e.now, Payload: ent})
	if e.debug {
		e.log.Printf("%s spawned %s #%d at (%.0f,%.0f)", side, typ, ent.ID, x, y)
	}
	return ent
}

// SpawnUnit places a finished unit. Unknown types panic.
func (e *Engine) SpawnUnit(typ string, x, y float64, side core.Side) *core.Entity {
	return e.spawn(typ, x, y, side, false, 0)
}

// SpawnBuilding places a building; buildTime 0 means already complete.
func (e *Engine) SpawnBuilding(typ string, x, y float64, side core.Side, buildTime float64) *core.Entity {
	return e.spawn(typ, x, y, side, true, buildTime)
}

func (e *Engine) cue(s core.Sound, x, y float64) {
	e.bus.Emit(core.Event{Type: core.EvtSound, Time: e.now, Payload: core.SoundCue{Sound: s, X: x, Y: y, Positional: true}})
}

// uiCue plays a non-positional sound for the player only
func (e *Engine) uiCue(side core.Side, s core.Sound) {
	if side != core.Player {
		return
	}
	e.bus.Emit(core.Event{Type: core.EvtSound, Time: e.now, Payload: core.SoundCue{Sound: s}})
}

func (e *Engine) addMessage(text string) {
	msg := Message{Text: text, Time: e.now}
	e.messages = append(e.messages, msg)
	if len(e.messages) > maxMessages {
		e.messages = e.messages[len(e.messages)-maxMessages:]
	}
	e.bus.Emit(core.Event{Type: core.EvtMessage, Time: e.now, Payload: msg})
}

// reject reports a refused order to the player and returns the wrapped error
func (e *Engine) reject(side core.Side, err error, text string) error {
	if side == core.Player {
		e.uiCue(side, core.SndError)
		e.addMessage(text)
	}
	if e.debug {
		e.log.Printf("%s order rejected: %s", side, text)
	}
	return fmt.Errorf("%w: %s", err, text)
}

// PathTo computes a fresh path for ent toward (x, y)
func (e *Engine) PathTo(ent *core.Entity, x, y float64) {
	ent.SetPath(e.FindPath(ent.X, ent.Y, x, y))
}

// FindPath runs A* on the match's grid
func (e *Engine) FindPath(sx, sy, ex, ey float64) []core.Waypoint {
	return pathfind.FindPath(e.nav, sx, sy, ex, ey, e.maxExpansions)
}

// AddIncome credits a side directly
func (e *Engine) AddIncome(side core.Side, minerals, gas float64) {
	r := &e.resources[side.MustValid()]
	r.Minerals += minerals
	r.Gas += gas
}

// Entities returns the live entity list. Callers must not modify it.
func (e *Engine) Entities() []*core.Entity { return e.entities }

// Entity looks up a live entity by id
func (e *Engine) Entity(id core.EntityID) *core.Entity {
	for _, ent := range e.entities {
		if ent.ID == id && ent.Alive() {
			return ent
		}
	}
	return nil
}

// Resources returns a copy of a side's economy
func (e *Engine) Resources(side core.Side) core.Resources { return e.resources[side.MustValid()] }

// Owns reports whether side has at least one completed building of type typ
func (e *Engine) Owns(side core.Side, typ string) bool { return e.owned[side.MustValid()][typ] > 0 }

// Faction returns a side's faction definition
func (e *Engine) Faction(side core.Side) *techtree.FactionDef { return e.factions[side.MustValid()] }

// BuildQueue returns a copy of a side's pending build orders
func (e *Engine) BuildQueue(side core.Side) []*core.BuildOrder {
	return append([]*core.BuildOrder(nil), e.buildQueues[side.MustValid()]...)
}

func (e *Engine) TechTree() *techtree.TechTree { return e.tt }
func (e *Engine) Map() *maplib.Map             { return e.m }
func (e *Engine) NavGrid() *pathfind.NavGrid   { return e.nav }
func (e *Engine) Fog() *Fog                    { return e.fog }
func (e *Engine) Effects() *effects.Manager    { return e.fx }
func (e *Engine) Events() *core.EventBus       { return e.bus }
func (e *Engine) Logger() *log.Logger          { return e.log }
func (e *Engine) Rand() *rand.Rand             { return e.rng }
func (e *Engine) Difficulty() core.Difficulty  { return e.difficulty }
func (e *Engine) Now() float64                 { return e.now }
func (e *Engine) Ticks() uint64                { return e.ticks }
func (e *Engine) Selected() []*core.Entity     { return e.selected }
func (e *Engine) Messages() []Message          { return e.messages }
func (e *Engine) Outcome() Result              { return e.result }
