package sim

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/maplib"
)

// attackMoveReach is added to weapon range when scanning for targets on the move
const attackMoveReach = 80.0

func (e *Engine) updateMovement(ent *core.Entity, dt, speedMult float64) {
	if ent.PathIndex >= len(ent.Path) {
		ent.ClearPath()
		return
	}
	wp := ent.Path[ent.PathIndex]
	dx := wp.X - ent.X
	dy := wp.Y - ent.Y
	dist := math.Sqrt(dx*dx + dy*dy)

	if dist < waypointArriveDist {
		ent.PathIndex++
		if ent.PathIndex >= len(ent.Path) {
			ent.ClearPath()
			if p := ent.Patrol; p != nil {
				nx, ny := p.X2, p.Y2
				if p.ToSecond {
					nx, ny = p.X1, p.Y1
				}
				p.ToSecond = !p.ToSecond
				e.PathTo(ent, nx, ny)
			} else {
				e.nextQueuedCommand(ent)
			}
		}
	} else {
		step := ent.Speed * speedMult * maplib.TileSize * dt / 1000
		ent.VX = dx / dist * step
		ent.VY = dy / dist * step
	}

	// Engage the first enemy that comes within reach while attack-moving
	if ent.AttackMove && ent.Damage > 0 && ent.Target == nil {
		for _, o := range e.entities {
			if o.Side != ent.Side && o.Alive() && ent.DistanceTo(o) <= ent.Range+attackMoveReach {
				ent.Target = o
				break
			}
		}
	}
}

func (e *Engine) nextQueuedCommand(ent *core.Entity) {
	if len(ent.Queue) == 0 {
		return
	}
	cmd := ent.Queue[0]
	ent.Queue = ent.Queue[1:]
	e.executeCommand(ent, cmd)
}

// executeCommand carries out a per-entity order. Orders that act on the
// selection as a whole (stop, hold, produce, rally, ability) are handled by
// IssueCommand and never reach the queue.
func (e *Engine) executeCommand(ent *core.Entity, cmd core.Command) {
	switch c := cmd.(type) {
	case core.MoveCommand:
		e.PathTo(ent, c.X, c.Y)
		ent.Target = nil
		ent.AttackMove = false
		ent.Hold = false
	case core.AttackMoveCommand:
		e.PathTo(ent, c.X, c.Y)
		ent.AttackMove = true
		ent.Hold = false
	case core.AttackCommand:
		ent.Target = c.Target
	case core.BuildCommand:
		_ = e.QueueBuild(ent, c.Type, c.X, c.Y)
	case core.HarvestCommand:
		_ = e.AssignHarvest(ent, c.Resource)
	case core.PatrolCommand:
		ent.Patrol = &core.PatrolRoute{X1: ent.X, Y1: ent.Y, X2: c.X, Y2: c.Y, ToSecond: true}
		e.PathTo(ent, c.X, c.Y)
		ent.AttackMove = true
		ent.Hold = false
	}
}
