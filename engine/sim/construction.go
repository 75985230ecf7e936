package sim

import (
	"fmt"
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/techtree"
)

const (
	buildArriveRadius  = 45.0
	buildAssistRadius  = 60.0
	geyserSnapRadius   = 50.0
	buildMarkerTimeMs  = 1500.0
	warpEffectTimeMs   = 1000.0
	waypointArriveDist = 8.0
)

// QueueBuild orders a worker to raise a structure at (x, y). The cost is paid
// up front. Structures that go on a geyser snap to the nearest free geyser
// within 50 px and claim it.
func (e *Engine) QueueBuild(worker *core.Entity, typ string, x, y float64) error {
	side := worker.Side
	d, ok := e.tt.Building(typ)
	if !ok {
		return e.reject(side, ErrUnknownType, fmt.Sprintf("Unknown structure %s", typ))
	}
	if d.Faction != e.factions[side].ID {
		return e.reject(side, ErrUnknownType, fmt.Sprintf("%s is not a %s structure", typ, e.factions[side].Name))
	}
	if !worker.CanBuild || !worker.Alive() {
		return e.reject(side, ErrNotABuilder, fmt.Sprintf("%s cannot build", worker.Type))
	}
	res := &e.resources[side]
	if !res.CanAfford(d.Cost.Minerals, d.Cost.Gas) {
		return e.reject(side, ErrInsufficientResources, "Insufficient resources")
	}
	if req := techtree.MissingPrereq(d.Prereqs, func(t string) bool { return e.Owns(side, t) }); req != "" {
		return e.reject(side, ErrMissingPrerequisite, "Requires "+req)
	}

	var geyser *core.Resource
	if d.OnGeyser {
		for _, g := range e.m.Geysers {
			if math.Hypot(g.X-x, g.Y-y) < geyserSnapRadius && !g.Occupied {
				geyser = g
				break
			}
		}
		if geyser == nil {
			return e.reject(side, ErrNoGeyser, "Must build on geyser")
		}
		x, y = geyser.X, geyser.Y
		geyser.Occupied = true
	}

	res.Spend(d.Cost.Minerals, d.Cost.Gas)
	e.unassignHarvest(worker)

	item := &core.BuildOrder{Worker: worker.ID, Type: typ, X: x, Y: y, Geyser: geyser}
	e.buildQueues[side] = append(e.buildQueues[side], item)
	e.approach(worker, x, y)
	worker.Constructing = item

	e.fx.AddEffect("build", x, y, buildMarkerTimeMs, d.Size, e.now)
	e.uiCue(side, core.SndBuild)
	if e.debug {
		e.log.Printf("%s queued %s at (%.0f,%.0f) by #%d", side, typ, x, y, worker.ID)
	}
	return nil
}

// approach paths toward a build site and finishes with the exact point so a
// retargeted or fallback path still ends within reach of the site.
func (e *Engine) approach(ent *core.Entity, x, y float64) {
	path := e.FindPath(ent.X, ent.Y, x, y)
	if n := len(path); n == 0 || math.Hypot(path[n-1].X-x, path[n-1].Y-y) > waypointArriveDist {
		path = append(path, core.Waypoint{X: x, Y: y})
	}
	ent.SetPath(path)
}

func (e *Engine) dropBuildOrder(side core.Side, i int) {
	q := e.buildQueues[side]
	e.buildQueues[side] = append(q[:i], q[i+1:]...)
}

func (e *Engine) processBuildQueue(side core.Side) {
	style := e.factions[side].Style
	for i := len(e.buildQueues[side]) - 1; i >= 0; i-- {
		item := e.buildQueues[side][i]
		worker := e.Entity(item.Worker)
		if worker == nil {
			if item.Building == nil && item.Geyser != nil {
				item.Geyser.Occupied = false
			}
			e.dropBuildOrder(side, i)
			continue
		}
		if item.Building != nil && !item.Building.Alive() {
			worker.Constructing = nil
			e.dropBuildOrder(side, i)
			e.nextQueuedCommand(worker)
			continue
		}

		d := e.tt.MustBuilding(item.Type)
		buildTime := d.BuildTime * 1000
		if worker.DistanceToPoint(item.X, item.Y) < buildArriveRadius {
			switch style {
			case techtree.StyleWarp:
				e.spawn(item.Type, item.X, item.Y, side, true, buildTime)
				e.fx.AddEffect("warp", item.X, item.Y, warpEffectTimeMs, d.Size, e.now)
				worker.Constructing = nil
				e.dropBuildOrder(side, i)
				e.nextQueuedCommand(worker)
			case techtree.StyleMorph:
				worker.HP = 0
				worker.Constructing = nil
				e.spawn(item.Type, item.X, item.Y, side, true, buildTime)
				e.dropBuildOrder(side, i)
			default:
				if item.Building == nil {
					item.Building = e.spawn(item.Type, item.X, item.Y, side, true, buildTime)
					worker.ClearPath()
				}
				if item.Building.Built >= 1 {
					worker.Constructing = nil
					e.dropBuildOrder(side, i)
					e.nextQueuedCommand(worker)
				}
			}
		} else if len(worker.Path) == 0 {
			e.approach(worker, item.X, item.Y)
			worker.Constructing = item
		}
	}
}

// updateConstruction advances an unfinished building. Construct-style
// buildings only progress while their worker stands within 60 px.
func (e *Engine) updateConstruction(b *core.Entity, dt float64) {
	rate := 1.0
	if e.factions[b.Side].Style == techtree.StyleConstruct {
		rate = 0
		for _, item := range e.buildQueues[b.Side] {
			if item.Building != b {
				continue
			}
			if w := e.Entity(item.Worker); w != nil && w.DistanceTo(b) < buildAssistRadius {
				rate = 1
			}
			break
		}
	}

	if rate > 0 {
		b.BuildProgress += dt * rate
		b.Built = min(1, b.BuildProgress/b.BuildTotal)
		b.HP = b.MaxHP * (0.1 + 0.9*b.Built)
	}
	if b.Built >= 1 {
		e.completeBuilding(b)
	}
}

func (e *Engine) completeBuilding(b *core.Entity) {
	d := e.tt.MustBuilding(b.Type)
	e.owned[b.Side][b.Type]++
	e.resources[b.Side].MaxSupply += d.SupplyAdd

	e.cue(core.SndComplete, b.X, b.Y)
	if b.Side == core.Player {
		e.addMessage(fmt.Sprintf("%s completed", b.Type))
	}
	e.bus.Emit(core.Event{Type: core.EvtBuildingComplete, Time: e.now, Payload: b})
	if e.debug {
		e.log.Printf("%s completed %s #%d", b.Side, b.Type, b.ID)
	}
}

// gasBuildingOn returns side's completed structure standing on a geyser
func (e *Engine) gasBuildingOn(g *core.Resource, side core.Side) *core.Entity {
	for _, ent := range e.entities {
		if !ent.IsBuilding || ent.Side != side || ent.Built < 1 || !ent.Alive() {
			continue
		}
		if ent.X == g.X && ent.Y == g.Y && e.tt.MustBuilding(ent.Type).OnGeyser {
			return ent
		}
	}
	return nil
}
