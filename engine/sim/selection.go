package sim

import (
	"math"
	"time"

	"github.com/1siamBot/rts-sim/engine/core"
)

// SelectionMode is how Select interprets its rectangle
type SelectionMode uint8

const (
	SelectBox SelectionMode = iota
	SelectClick
)

const doubleTapWindow = 300 * time.Millisecond

// ClickKind classifies what lies under a world position
type ClickKind uint8

const (
	ClickGround ClickKind = iota
	ClickMineral
	ClickGeyser
	ClickEntity
)

func (k ClickKind) String() string {
	switch k {
	case ClickMineral:
		return "mineral"
	case ClickGeyser:
		return "geyser"
	case ClickEntity:
		return "entity"
	}
	return "ground"
}

// ClickTarget is the result of GetClickTarget
type ClickTarget struct {
	Kind     ClickKind
	Resource *core.Resource
	Entity   *core.Entity
	X, Y     float64
}

// Select picks the player's living entities inside the box (x, y, w, h), or
// within reach of (x, y) in click mode. Units win over buildings when both
// are caught.
func (e *Engine) Select(x, y, w, h float64, additive bool, mode SelectionMode) []*core.Entity {
	if !additive {
		for _, ent := range e.entities {
			ent.Selected = false
		}
	}
	for _, ent := range e.entities {
		if ent.Side != core.Player || !ent.Alive() {
			continue
		}
		var hit bool
		if mode == SelectClick {
			hit = math.Hypot(ent.X-x, ent.Y-y) < ent.Size+10
		} else {
			hit = ent.X >= x && ent.X <= x+w && ent.Y >= y && ent.Y <= y+h
		}
		if hit {
			ent.Selected = true
		}
	}

	var units, buildings int
	for _, ent := range e.entities {
		if !ent.Selected {
			continue
		}
		if ent.IsBuilding {
			buildings++
		} else {
			units++
		}
	}
	if units > 0 && buildings > 0 {
		for _, ent := range e.entities {
			if ent.IsBuilding {
				ent.Selected = false
			}
		}
	}
	e.collectSelected()
	return e.selected
}

// SelectArmy selects every living player unit that is not a worker
func (e *Engine) SelectArmy() []*core.Entity {
	for _, ent := range e.entities {
		ent.Selected = ent.Side == core.Player && ent.Alive() && !ent.IsBuilding && !ent.CanHarvest
	}
	e.collectSelected()
	return e.selected
}

func (e *Engine) collectSelected() {
	var sel []*core.Entity
	for _, ent := range e.entities {
		if ent.Selected {
			sel = append(sel, ent)
		}
	}
	e.selected = sel
	if len(e.selected) > 0 {
		e.uiCue(core.Player, core.SndSelect)
	}
}

// SetControlGroup binds the current selection to group n
func (e *Engine) SetControlGroup(n int) {
	ids := make([]core.EntityID, 0, len(e.selected))
	for _, ent := range e.selected {
		ids = append(ids, ent.ID)
	}
	e.groups[n] = ids
}

// SelectControlGroup recalls group n. A second recall within 300 ms of wall
// time returns the group's centroid so the camera can jump to it.
func (e *Engine) SelectControlGroup(n int) (core.Point, bool) {
	ids := e.groups[n]
	if len(ids) == 0 {
		return core.Point{}, false
	}
	now := e.wall()
	last, tapped := e.lastGroupTap[n]
	doubleTap := tapped && now.Sub(last) < doubleTapWindow
	e.lastGroupTap[n] = now

	member := make(map[core.EntityID]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}
	for _, ent := range e.entities {
		ent.Selected = member[ent.ID] && ent.Alive()
	}
	e.collectSelected()

	if !doubleTap || len(e.selected) == 0 {
		return core.Point{}, false
	}
	var c core.Point
	for _, ent := range e.selected {
		c.X += ent.X
		c.Y += ent.Y
	}
	c.X /= float64(len(e.selected))
	c.Y /= float64(len(e.selected))
	return c, true
}

// ControlGroup returns the ids bound to group n
func (e *Engine) ControlGroup(n int) []core.EntityID { return e.groups[n] }

// GetClickTarget resolves what a right click at (wx, wy) refers to
func (e *Engine) GetClickTarget(wx, wy float64) ClickTarget {
	for _, m := range e.m.Minerals {
		if math.Hypot(m.X-wx, m.Y-wy) < 30 && m.Amount > 0 {
			return ClickTarget{Kind: ClickMineral, Resource: m, X: m.X, Y: m.Y}
		}
	}
	for _, g := range e.m.Geysers {
		if math.Hypot(g.X-wx, g.Y-wy) < 35 {
			return ClickTarget{Kind: ClickGeyser, Resource: g, X: g.X, Y: g.Y}
		}
	}
	for _, ent := range e.entities {
		if ent.Alive() && math.Hypot(ent.X-wx, ent.Y-wy) < ent.Size+5 {
			return ClickTarget{Kind: ClickEntity, Entity: ent, X: ent.X, Y: ent.Y}
		}
	}
	return ClickTarget{Kind: ClickGround, X: wx, Y: wy}
}
