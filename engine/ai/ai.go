package ai

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/pathfind"
	"github.com/1siamBot/rts-sim/engine/sim"
	"github.com/1siamBot/rts-sim/engine/techtree"
)

const (
	patchRadius        = 300.0
	workersPerPatch    = 3
	supplyMargin       = 3
	supplySpread       = 150.0
	maxProduction      = 3
	productionMinerals = 150.0
	productionSpread   = 200.0
	maxWorkers         = 20
	maxQueue           = 3
	engageRadius       = 400.0
	threatRadius       = 400.0
	leashRadius        = 200.0
	rallySpread        = 80.0
)

// Tuning is the per-difficulty behavior of the controller
type Tuning struct {
	// Mult scales the passive income the controller grants itself each tick
	Mult float64
	// AttackThreshold is the army size at which it goes on the offensive
	AttackThreshold int
}

var tunings = map[core.Difficulty]Tuning{
	core.Easy:   {Mult: 0.8, AttackThreshold: 20},
	core.Normal: {Mult: 1.3, AttackThreshold: 12},
	core.Hard:   {Mult: 2, AttackThreshold: 8},
	core.Insane: {Mult: 3, AttackThreshold: 5},
}

// TuningFor returns the tuning of a difficulty, falling back to normal
func TuningFor(d core.Difficulty) Tuning {
	if t, ok := tunings[d]; ok {
		return t
	}
	return tunings[core.Normal]
}

// Posture is what the army is currently doing
type Posture uint8

const (
	Defending Posture = iota
	Attacking
)

func (p Posture) String() string {
	if p == Attacking {
		return "attacking"
	}
	return "defending"
}

// Controller plays the opponent side through the engine's public API. It
// implements sim.Opponent.
type Controller struct {
	Side   core.Side
	tuning Tuning

	posture Posture
	flow    *pathfind.FlowField
}

// NewController creates a controller for the opponent side
func NewController(d core.Difficulty) *Controller {
	return &Controller{Side: core.Opponent, tuning: TuningFor(d)}
}

// Posture reports whether the army is attacking or holding at home
func (c *Controller) Posture() Posture { return c.posture }

type view struct {
	workers, army, buildings, enemies []*core.Entity
	base                              *core.Entity
}

func (c *Controller) look(e *sim.Engine) view {
	var v view
	tt := e.TechTree()
	for _, ent := range e.Entities() {
		if !ent.Alive() {
			continue
		}
		if ent.Side != c.Side {
			v.enemies = append(v.enemies, ent)
			continue
		}
		switch {
		case ent.IsBuilding:
			if ent.Built < 1 {
				continue
			}
			v.buildings = append(v.buildings, ent)
			if v.base == nil && tt.MustBuilding(ent.Type).Base {
				v.base = ent
			}
		case ent.CanHarvest:
			v.workers = append(v.workers, ent)
		case ent.Damage > 0:
			v.army = append(v.army, ent)
		}
	}
	return v
}

// Update runs one round of decisions. It is called once per engine tick.
func (c *Controller) Update(e *sim.Engine, dt float64) {
	e.AddIncome(c.Side, c.tuning.Mult*0.5, c.tuning.Mult*0.15)

	v := c.look(e)
	if v.base == nil {
		return
	}
	c.manageWorkers(e, v)
	c.manageSupply(e, v)
	c.manageProductionBuildings(e, v)
	c.trainWorkers(e, v)
	c.trainArmy(e, v)

	if len(v.army) >= c.tuning.AttackThreshold {
		c.setPosture(e, Attacking, len(v.army))
		c.attack(e, v)
	} else {
		c.setPosture(e, Defending, len(v.army))
		c.defend(e, v)
	}
}

func (c *Controller) setPosture(e *sim.Engine, p Posture, army int) {
	if p == c.posture {
		return
	}
	c.posture = p
	e.Logger().Printf("ai: %s with %d units (threshold %d)", p, army, c.tuning.AttackThreshold)
}

// manageWorkers sends idle or stranded workers to the least crowded patch
// near the base
func (c *Controller) manageWorkers(e *sim.Engine, v view) {
	for _, w := range v.workers {
		if w.Constructing != nil {
			continue
		}
		if w.Harvesting != nil && !w.Harvesting.Depleted() {
			continue
		}
		var best *core.Resource
		fewest := math.MaxInt
		for _, m := range e.Map().Minerals {
			if m.Depleted() || math.Hypot(m.X-v.base.X, m.Y-v.base.Y) >= patchRadius {
				continue
			}
			if len(m.Workers) < fewest {
				best, fewest = m, len(m.Workers)
			}
		}
		if best != nil && fewest < workersPerPatch {
			_ = e.AssignHarvest(w, best)
		}
	}
}

func (c *Controller) freeWorker(e *sim.Engine, v view) *core.Entity {
	busy := make(map[core.EntityID]bool)
	for _, o := range e.BuildQueue(c.Side) {
		busy[o.Worker] = true
	}
	for _, w := range v.workers {
		if w.CanBuild && w.Constructing == nil && !busy[w.ID] {
			return w
		}
	}
	return nil
}

// pending reports a queued order or an unfinished building of typ. Warped
// structures leave the build queue as soon as they spawn, so the scan over
// entities covers the time they spend warping in.
func (c *Controller) pending(e *sim.Engine, typ string) bool {
	for _, o := range e.BuildQueue(c.Side) {
		if o.Type == typ {
			return true
		}
	}
	for _, ent := range e.Entities() {
		if ent.Side == c.Side && ent.IsBuilding && ent.Alive() && ent.Built < 1 && ent.Type == typ {
			return true
		}
	}
	return false
}

func (c *Controller) placeNear(e *sim.Engine, base *core.Entity, spread float64) (float64, float64) {
	r := e.Rand()
	return base.X + (r.Float64()-0.5)*spread, base.Y + (r.Float64()-0.5)*spread
}

// manageSupply adds supply when within three of the cap
func (c *Controller) manageSupply(e *sim.Engine, v view) {
	res := e.Resources(c.Side)
	if res.Supply < res.MaxSupply-supplyMargin {
		return
	}
	f := e.Faction(c.Side)
	tt := e.TechTree()

	if u, ok := tt.Unit(f.Supply); ok {
		for _, b := range v.buildings {
			if b.Producing == u.ID || contains(b.ProductionQueue, u.ID) {
				return
			}
		}
		if res.Minerals < u.Cost.Minerals {
			return
		}
		for _, b := range v.buildings {
			if b.CanProduce(u.ID) && b.Producing == "" {
				_ = e.StartProduction(b, u.ID)
				return
			}
		}
		return
	}

	d := tt.MustBuilding(f.Supply)
	if res.Minerals < d.Cost.Minerals || c.pending(e, d.ID) {
		return
	}
	if w := c.freeWorker(e, v); w != nil {
		x, y := c.placeNear(e, v.base, supplySpread)
		_ = e.QueueBuild(w, d.ID, x, y)
	}
}

// nextProductionBuilding follows each faction's fixed unlock order
func (c *Controller) nextProductionBuilding(e *sim.Engine, have int) string {
	owns := func(t string) bool { return e.Owns(c.Side, t) }
	switch e.Faction(c.Side).ID {
	case techtree.Protoss:
		switch {
		case !owns("pylon"):
			return "pylon"
		case !owns("gateway"):
			return "gateway"
		case have < 2:
			return "gateway"
		}
	case techtree.Zerg:
		if !owns("pool") {
			return "pool"
		}
	default:
		switch {
		case !owns("supplydepot"):
			return "supplydepot"
		case !owns("barracks"):
			return "barracks"
		case have < 2:
			return "barracks"
		}
	}
	return ""
}

func (c *Controller) manageProductionBuildings(e *sim.Engine, v view) {
	tt := e.TechTree()
	have := 0
	for _, b := range v.buildings {
		d := tt.MustBuilding(b.Type)
		if len(d.CanProduce) > 0 && !d.Base {
			have++
		}
	}
	res := e.Resources(c.Side)
	if have >= maxProduction || res.Minerals < productionMinerals {
		return
	}
	typ := c.nextProductionBuilding(e, have)
	if typ == "" || c.pending(e, typ) {
		return
	}
	if res.Minerals < tt.MustBuilding(typ).Cost.Minerals {
		return
	}
	if w := c.freeWorker(e, v); w != nil {
		x, y := c.placeNear(e, v.base, productionSpread)
		if err := e.QueueBuild(w, typ, x, y); err == nil {
			e.Logger().Printf("ai: building %s", typ)
		}
	}
}

func (c *Controller) trainWorkers(e *sim.Engine, v view) {
	if len(v.workers) >= maxWorkers {
		return
	}
	worker := e.Faction(c.Side).Worker
	for _, b := range v.buildings {
		if b.CanProduce(worker) && b.Producing == "" {
			if e.StartProduction(b, worker) == nil {
				return
			}
		}
	}
}

// trainArmy fills each idle production building with the cheapest combat
// unit it can afford right now
func (c *Controller) trainArmy(e *sim.Engine, v view) {
	tt := e.TechTree()
	for _, b := range v.buildings {
		if b.Producing != "" || len(b.ProductionQueue) >= maxQueue {
			continue
		}
		res := e.Resources(c.Side)
		var best *techtree.UnitDef
		for _, id := range b.Produces {
			u, ok := tt.Unit(id)
			if !ok || u.Harvester || u.Damage <= 0 {
				continue
			}
			if !res.CanAfford(u.Cost.Minerals, u.Cost.Gas) || !e.CanSupply(c.Side, u) {
				continue
			}
			if !techtree.HasPrereqs(u.Prereqs, func(t string) bool { return e.Owns(c.Side, t) }) {
				continue
			}
			if best == nil || u.Cost.Minerals < best.Cost.Minerals {
				best = u
			}
		}
		if best != nil {
			_ = e.StartProduction(b, best.ID)
		}
	}
}

func (c *Controller) attack(e *sim.Engine, v view) {
	if len(v.enemies) == 0 {
		return
	}
	goal := v.enemies[0]
	for _, en := range v.enemies {
		if en.IsBuilding {
			goal = en
			break
		}
	}

	for _, u := range v.army {
		if u.Target.Alive() {
			continue
		}
		if t := nearest(u, v.enemies, engageRadius); t != nil {
			e.Order(u, core.AttackCommand{Target: t})
			u.AttackMove = true
			continue
		}
		if len(u.Path) == 0 {
			c.advance(e, u, goal)
		}
	}
}

// advance routes a unit toward goal along a shared flow field, falling back
// to A* when the field cannot reach the unit's tile
func (c *Controller) advance(e *sim.Engine, u, goal *core.Entity) {
	ng := e.NavGrid()
	r := e.Rand()
	tx := goal.X + (r.Float64()-0.5)*rallySpread
	ty := goal.Y + (r.Float64()-0.5)*rallySpread

	gt := ng.ToTile(goal.X, goal.Y)
	if c.flow == nil || c.flow.Goal != gt {
		c.flow = pathfind.NewFlowField(ng, gt)
	}
	path := pathfind.SmoothPath(ng, c.flow.Walk(ng, u.X, u.Y))
	if len(path) == 0 {
		path = e.FindPath(u.X, u.Y, tx, ty)
	} else {
		path[len(path)-1] = core.Waypoint{X: tx, Y: ty}
	}
	u.SetPath(path)
	u.AttackMove = true
}

func (c *Controller) defend(e *sim.Engine, v view) {
	var threat *core.Entity
	if Threat(v.enemies, v.base.X, v.base.Y, threatRadius) > 0 {
		threat = nearest(v.base, v.enemies, threatRadius)
	}
	r := e.Rand()
	for _, u := range v.army {
		if threat != nil {
			e.Order(u, core.AttackCommand{Target: threat})
			u.AttackMove = true
			continue
		}
		if u.DistanceTo(v.base) > leashRadius && len(u.Path) == 0 {
			e.PathTo(u, v.base.X+(r.Float64()-0.5)*rallySpread, v.base.Y+(r.Float64()-0.5)*rallySpread)
		}
	}
}

// Threat sums the damage of enemies near (x, y), weighted toward the centre
func Threat(enemies []*core.Entity, x, y, radius float64) float64 {
	threat := 0.0
	for _, en := range enemies {
		d := math.Hypot(en.X-x, en.Y-y)
		if d < radius {
			threat += math.Max(en.Damage, 1) * (1.0 - d/radius)
		}
	}
	return threat
}

func nearest(from *core.Entity, candidates []*core.Entity, within float64) *core.Entity {
	var best *core.Entity
	bestD := within
	for _, c := range candidates {
		if d := from.DistanceTo(c); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
