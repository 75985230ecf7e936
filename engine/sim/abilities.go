package sim

import (
	"fmt"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/maplib"
)

const blinkEffect = 300.0

// AbilityStatus is what the HUD shows for one ability of the primary selection
type AbilityStatus struct {
	Key       string
	Name      string
	Hotkey    string
	Remaining float64 // ms until ready
	Ready     bool
	HasEnergy bool
	Active    bool // siege engaged
}

// UseAbility activates key on ent, targeting (x, y) for targeted abilities.
// Every check runs before any state changes.
func (e *Engine) UseAbility(ent *core.Entity, key string, x, y float64) error {
	side := ent.Side
	a, ok := e.tt.Ability(key)
	if !ok || !ent.HasAbility(key) {
		return e.reject(side, ErrUnknownType, fmt.Sprintf("%s has no ability %s", ent.Type, key))
	}
	if ent.Cooldowns[key] > e.now {
		return e.reject(side, ErrOnCooldown, a.Name+" is on cooldown")
	}
	if a.EnergyCost > 0 && ent.Energy < a.EnergyCost {
		return e.reject(side, ErrInsufficientEnergy, "Not enough energy")
	}
	if key == "blink" && ent.DistanceToPoint(x, y) > a.Range*maplib.TileSize {
		return e.reject(side, ErrOutOfRange, "Out of range")
	}

	ent.Energy -= a.EnergyCost
	ent.HP -= a.HPCost
	if a.Cooldown > 0 {
		ent.Cooldowns[key] = e.now + a.Cooldown
	}

	switch key {
	case "blink":
		e.fx.AddEffect("warp", ent.X, ent.Y, blinkEffect, 15, e.now)
		ent.X, ent.Y = x, y
		ent.ClearPath()
		e.fx.AddEffect("warp", x, y, blinkEffect, 15, e.now)
	case "stim":
		ent.Buffs = append(ent.Buffs, core.Buff{
			Kind:       key,
			Expires:    e.now + a.Duration,
			SpeedMult:  a.SpeedMult,
			AttackMult: a.AttackMult,
		})
	case "siege":
		e.toggleSiege(ent)
	}
	if e.debug {
		e.log.Printf("%s %s #%d used %s", side, ent.Type, ent.ID, key)
	}
	return nil
}

// toggleSiege swaps between the unit's mobile stats and its entrenched
// profile. Leaving siege restores the stat table values exactly.
func (e *Engine) toggleSiege(ent *core.Entity) {
	d := e.tt.MustUnit(ent.Type)
	if d.Siege == nil {
		return
	}
	ent.Sieged = !ent.Sieged
	if ent.Sieged {
		ent.Damage = d.Siege.Damage
		ent.Range = d.Siege.Range * maplib.TileSize
		ent.AttackSpeed = d.Siege.AttackSpeed
		ent.Splash = d.Siege.Splash
		ent.Speed = 0
		ent.ClearPath()
		return
	}
	ent.Damage = d.Damage
	ent.Range = d.Range * maplib.TileSize
	ent.AttackSpeed = d.AttackSpeed
	ent.Splash = d.Splash
	ent.Speed = d.Speed
}

// Abilities lists the abilities of a single selected entity
func (e *Engine) Abilities() []AbilityStatus {
	if len(e.selected) != 1 {
		return nil
	}
	ent := e.selected[0]
	out := make([]AbilityStatus, 0, len(ent.Abilities))
	for _, key := range ent.Abilities {
		a, ok := e.tt.Ability(key)
		if !ok {
			continue
		}
		out = append(out, AbilityStatus{
			Key:       key,
			Name:      a.Name,
			Hotkey:    a.Hotkey,
			Remaining: max(0, ent.Cooldowns[key]-e.now),
			Ready:     ent.Cooldowns[key] <= e.now,
			HasEnergy: a.EnergyCost == 0 || ent.Energy >= a.EnergyCost,
			Active:    key == "siege" && ent.Sieged,
		})
	}
	return out
}
