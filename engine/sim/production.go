package sim

import (
	"fmt"
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/techtree"
)

const (
	refundRate  = 0.75
	spawnJitter = 30.0
)

// StartProduction trains unit at building. The cost is paid now; if the
// building is busy the unit waits in its queue.
func (e *Engine) StartProduction(building *core.Entity, unit string) error {
	side := building.Side
	if !building.IsBuilding || !building.Alive() {
		return e.reject(side, ErrNotABuilding, fmt.Sprintf("%s is not a building", building.Type))
	}
	if building.Built < 1 || !building.CanProduce(unit) {
		return e.reject(side, ErrCannotProduce, fmt.Sprintf("%s cannot train %s", building.Type, unit))
	}
	d, ok := e.tt.Unit(unit)
	if !ok {
		return e.reject(side, ErrUnknownType, fmt.Sprintf("Unknown unit %s", unit))
	}

	res := &e.resources[side]
	if !res.CanAfford(d.Cost.Minerals, d.Cost.Gas) {
		return e.reject(side, ErrInsufficientResources, "Insufficient resources")
	}
	// zero-supply units such as the overlord stay trainable while capped
	if !e.CanSupply(side, d) {
		return e.reject(side, ErrSupplyCapped, "Insufficient supply")
	}
	if req := techtree.MissingPrereq(d.Prereqs, func(t string) bool { return e.Owns(side, t) }); req != "" {
		return e.reject(side, ErrMissingPrerequisite, "Requires "+req)
	}

	res.Spend(d.Cost.Minerals, d.Cost.Gas)
	if building.Producing != "" {
		building.ProductionQueue = append(building.ProductionQueue, unit)
	} else {
		e.beginProduction(building, d)
	}
	e.uiCue(side, core.SndSelect)
	return nil
}

// CanSupply reports whether d fits under side's cap once every unit already
// in production or queued has spawned.
func (e *Engine) CanSupply(side core.Side, d *techtree.UnitDef) bool {
	need := orderSupply(d)
	if need <= 0 {
		return true
	}
	res := e.resources[side.MustValid()]
	return res.SupplyFree(e.CommittedSupply(side) + need)
}

// CommittedSupply is the supply of units paid for but not yet spawned
func (e *Engine) CommittedSupply(side core.Side) float64 {
	var n float64
	for _, b := range e.entities {
		if b.Side != side || !b.IsBuilding || !b.Alive() {
			continue
		}
		if b.Producing != "" {
			n += orderSupply(e.tt.MustUnit(b.Producing))
		}
		for _, q := range b.ProductionQueue {
			n += orderSupply(e.tt.MustUnit(q))
		}
	}
	return n
}

func orderSupply(d *techtree.UnitDef) float64 {
	return d.Supply * float64(max(1, d.SpawnCount))
}

func (e *Engine) beginProduction(building *core.Entity, d *techtree.UnitDef) {
	building.Producing = d.ID
	building.ProductionEnd = e.now + d.BuildTime*1000
}

// promoteNext starts the head of the queue. It was paid for when queued.
func (e *Engine) promoteNext(building *core.Entity) {
	building.Producing = ""
	if len(building.ProductionQueue) == 0 {
		return
	}
	next := building.ProductionQueue[0]
	building.ProductionQueue = building.ProductionQueue[1:]
	e.beginProduction(building, e.tt.MustUnit(next))
}

// CancelProduction refunds 75% of a unit's cost. Index 0 is the unit in
// progress; index n > 0 is the n-th queued unit.
func (e *Engine) CancelProduction(building *core.Entity, index int) bool {
	res := &e.resources[building.Side]
	refund := func(unit string) {
		d := e.tt.MustUnit(unit)
		res.Minerals += math.Floor(d.Cost.Minerals * refundRate)
		res.Gas += math.Floor(d.Cost.Gas * refundRate)
	}

	switch {
	case index == 0 && building.Producing != "":
		refund(building.Producing)
		e.promoteNext(building)
	case index > 0 && index <= len(building.ProductionQueue):
		refund(building.ProductionQueue[index-1])
		building.ProductionQueue = append(building.ProductionQueue[:index-1], building.ProductionQueue[index:]...)
	default:
		return false
	}
	return true
}

func (e *Engine) completeProduction(building *core.Entity) {
	d := e.tt.MustUnit(building.Producing)
	for i := 0; i < max(1, d.SpawnCount); i++ {
		u := e.spawn(d.ID,
			building.X+(e.rng.Float64()-0.5)*spawnJitter,
			building.Y+building.Size+10+float64(i)*10,
			building.Side, false, 0)
		if building.Rally != nil {
			e.PathTo(u, building.Rally.X, building.Rally.Y)
		}
		e.bus.Emit(core.Event{Type: core.EvtProductionComplete, Time: e.now, Payload: u})
	}
	e.cue(core.SndComplete, building.X, building.Y)
	e.promoteNext(building)
}
