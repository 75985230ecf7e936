package sim

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
)

const (
	gatherRadius     = 35.0
	depositMargin    = 15.0
	mineralTrip      = 5.0
	gasTrip          = 4.0
	gatherCooldownMs = 2000.0
)

// AssignHarvest sends a worker to gather from a resource. Depleted patches are
// refused, and a geyser needs a completed gas structure of the worker's side.
func (e *Engine) AssignHarvest(worker *core.Entity, r *core.Resource) error {
	if !worker.CanHarvest {
		return e.reject(worker.Side, ErrNotAHarvester, worker.Type+" cannot harvest")
	}
	if err := e.checkHarvestable(worker.Side, r); err != nil {
		return err
	}
	e.unassignHarvest(worker)
	worker.Harvesting = r
	worker.Returning = false
	r.Assign(worker.ID)
	e.PathTo(worker, r.X, r.Y)
	return nil
}

func (e *Engine) checkHarvestable(side core.Side, r *core.Resource) error {
	if r.Depleted() {
		return e.reject(side, ErrResourceDepleted, "Resource depleted")
	}
	if r.IsGeyser && e.gasBuildingOn(r, side) == nil {
		return e.reject(side, ErrMissingPrerequisite, "Requires "+e.factions[side].Gas)
	}
	return nil
}

func (e *Engine) unassignHarvest(worker *core.Entity) {
	if worker.Harvesting != nil {
		worker.Harvesting.Unassign(worker.ID)
		worker.Harvesting = nil
	}
}

// nearestBase returns side's closest completed town hall
func (e *Engine) nearestBase(ent *core.Entity) *core.Entity {
	var best *core.Entity
	bestD := math.MaxFloat64
	for _, b := range e.entities {
		if !b.IsBuilding || b.Side != ent.Side || b.Built < 1 || !b.Alive() {
			continue
		}
		if !e.tt.MustBuilding(b.Type).Base {
			continue
		}
		if d := ent.DistanceTo(b); d < bestD {
			best, bestD = b, d
		}
	}
	return best
}

// updateHarvesting runs the gather, carry, deposit loop
func (e *Engine) updateHarvesting(ent *core.Entity, dt float64) {
	r := ent.Harvesting
	res := &e.resources[ent.Side]

	if ent.Returning {
		base := e.nearestBase(ent)
		if base == nil {
			return
		}
		if ent.DistanceTo(base) < base.Size+depositMargin {
			if r.IsGeyser {
				res.Gas += ent.Carrying
			} else {
				res.Minerals += ent.Carrying
			}
			ent.Carrying = 0
			ent.Returning = false
			if r.Amount > 0 {
				e.PathTo(ent, r.X, r.Y)
			}
		} else if len(ent.Path) == 0 {
			e.PathTo(ent, base.X, base.Y)
		}
		return
	}

	if ent.DistanceToPoint(r.X, r.Y) < gatherRadius {
		if ent.HarvestCooldown <= 0 && r.Amount > 0 {
			trip := mineralTrip
			if r.IsGeyser {
				trip = gasTrip
			}
			ent.Carrying = r.Take(trip)
			ent.Returning = true
			ent.ClearPath()
			ent.HarvestCooldown = gatherCooldownMs
		} else {
			ent.HarvestCooldown -= dt
		}
	} else if len(ent.Path) == 0 {
		e.PathTo(ent, r.X, r.Y)
	}
}
