package sim

import (
	"errors"

	"github.com/1siamBot/rts-sim/engine/core"
)

const (
	moveMarkerMs   = 800.0
	attackMarkerMs = 600.0
	rallyMarkerMs  = 600.0
)

// IssueCommand gives an order to the player's selection. With queue set the
// order is appended to each entity's command queue, unless the entity is
// idle, in which case it runs at once. Move and attack-move keep the
// selection's formation by offsetting each target from the group centroid.
func (e *Engine) IssueCommand(cmd core.Command, queue bool) error {
	var sel []*core.Entity
	for _, ent := range e.selected {
		if ent.Side == core.Player && ent.Alive() {
			sel = append(sel, ent)
		}
	}
	if len(sel) == 0 {
		return ErrNoSelection
	}
	var cx, cy float64
	for _, ent := range sel {
		cx += ent.X
		cy += ent.Y
	}
	cx /= float64(len(sel))
	cy /= float64(len(sel))

	switch c := cmd.(type) {
	case core.MoveCommand:
		e.fx.AddEffect("move", c.X, c.Y, moveMarkerMs, 20, e.now)
		for _, ent := range sel {
			if ent.IsBuilding || ent.Sieged {
				continue
			}
			e.dispatch(ent, core.MoveCommand{X: c.X + ent.X - cx, Y: c.Y + ent.Y - cy}, queue)
			ent.Target = nil
			ent.AttackMove = false
			ent.Patrol = nil
			if !queue {
				e.unassignHarvest(ent)
			}
		}
		e.uiCue(core.Player, core.SndMove)

	case core.AttackMoveCommand:
		e.fx.AddEffect("attack", c.X, c.Y, attackMarkerMs, 0, e.now)
		for _, ent := range sel {
			if ent.IsBuilding || ent.Damage <= 0 {
				continue
			}
			e.dispatch(ent, core.AttackMoveCommand{X: c.X + ent.X - cx, Y: c.Y + ent.Y - cy}, queue)
			ent.Patrol = nil
		}
		e.uiCue(core.Player, core.SndMove)

	case core.AttackCommand:
		for _, ent := range sel {
			if ent.IsBuilding || ent.Damage <= 0 {
				continue
			}
			e.dispatch(ent, c, queue)
		}
		e.uiCue(core.Player, core.SndMove)

	case core.PatrolCommand:
		for _, ent := range sel {
			if ent.IsBuilding {
				continue
			}
			e.dispatch(ent, c, queue)
		}
		e.uiCue(core.Player, core.SndMove)

	case core.StopCommand:
		for _, ent := range sel {
			ent.ClearPath()
			ent.Target = nil
			ent.AttackMove = false
			ent.Hold = false
			ent.Patrol = nil
			ent.Queue = nil
		}

	case core.HoldCommand:
		for _, ent := range sel {
			ent.ClearPath()
			ent.Hold = true
			ent.AttackMove = false
			ent.Patrol = nil
			ent.Queue = nil
		}

	case core.HarvestCommand:
		if err := e.checkHarvestable(core.Player, c.Resource); err != nil {
			return err
		}
		for _, ent := range sel {
			if !ent.CanHarvest {
				continue
			}
			if queue && !ent.Idle() {
				ent.Queue = append(ent.Queue, c)
				continue
			}
			ent.Queue = nil
			if err := e.AssignHarvest(ent, c.Resource); err != nil {
				return err
			}
		}
		e.uiCue(core.Player, core.SndMove)

	case core.BuildCommand:
		var builder *core.Entity
		for _, ent := range sel {
			if ent.CanBuild && ent.Constructing == nil {
				builder = ent
				break
			}
		}
		if builder == nil {
			return e.reject(core.Player, ErrNotABuilder, "No available builder")
		}
		if queue && !builder.Idle() {
			builder.Queue = append(builder.Queue, c)
			return nil
		}
		return e.QueueBuild(builder, c.Type, c.X, c.Y)

	case core.ProduceCommand:
		return e.StartProduction(sel[0], c.Unit)

	case core.RallyCommand:
		for _, ent := range sel {
			if ent.IsBuilding {
				ent.Rally = &core.Point{X: c.X, Y: c.Y}
			}
		}
		e.fx.AddEffect("move", c.X, c.Y, rallyMarkerMs, 15, e.now)

	case core.AbilityCommand:
		return e.UseAbility(sel[0], c.Key, c.X, c.Y)

	default:
		return errors.New("unsupported command " + cmd.Name())
	}
	return nil
}

// Order runs a per-entity command for any side, bypassing the selection.
// The opponent controller drives its units through it.
func (e *Engine) Order(ent *core.Entity, cmd core.Command) {
	e.executeCommand(ent, cmd)
}

// dispatch runs cmd now or queues it behind the entity's current work
func (e *Engine) dispatch(ent *core.Entity, cmd core.Command, queue bool) {
	if queue && !ent.Idle() {
		ent.Queue = append(ent.Queue, cmd)
		return
	}
	ent.Queue = nil
	e.executeCommand(ent, cmd)
}
