package sim

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/effects"
	"github.com/1siamBot/rts-sim/engine/maplib"
)

const (
	minDamage         = 0.5
	splashFactor      = 0.5
	projectileSpeed   = 15 * maplib.TileSize // px per second
	explosionEffectMs = 400.0
)

// DamageSource describes where a hit came from. A positive Splash radius
// spreads reduced damage to other enemies around (X, Y).
type DamageSource struct {
	Side   core.Side
	Splash float64
	X, Y   float64
}

func (e *Engine) updateCombat(ent *core.Entity, attackMult float64) {
	if !ent.Target.Alive() {
		ent.Target = nil
		if !ent.Hold {
			ent.Target = e.acquireTarget(ent)
		}
	}
	t := ent.Target
	if t == nil {
		return
	}

	dist := ent.DistanceTo(t)
	if dist <= ent.Range {
		if e.now-ent.LastAttack >= ent.AttackSpeed/attackMult {
			e.performAttack(ent, t)
			ent.LastAttack = e.now
		}
		return
	}
	if !ent.Hold && !ent.Sieged && ent.Speed > 0 && len(ent.Path) == 0 {
		e.PathTo(ent, t.X, t.Y)
	}
}

// acquireTarget returns the nearest living enemy inside acquisition range.
// Player units only see what the fog reveals.
func (e *Engine) acquireTarget(ent *core.Entity) *core.Entity {
	reach := ent.Range
	if ent.AttackMove {
		reach += attackMoveReach
	}
	var best *core.Entity
	bestD := math.MaxFloat64
	for _, o := range e.entities {
		if o.Side == ent.Side || !o.Alive() {
			continue
		}
		if ent.Side == core.Player && !e.fog.IsVisible(o.X, o.Y) {
			continue
		}
		d := ent.DistanceTo(o)
		if d < reach && d < bestD {
			best, bestD = o, d
		}
	}
	return best
}

func (e *Engine) performAttack(ent, t *core.Entity) {
	hits := float64(max(1, ent.Hits))
	dmg := ent.Damage * hits
	if b := ent.Bonus; b != nil && b.Class == t.ArmorClass() {
		dmg += b.Amount * hits
	}

	snd := core.SndAttack
	if ent.Projectile == "particle" {
		snd = core.SndLaser
	}
	e.cue(snd, ent.X, ent.Y)

	if ent.Projectile != "" {
		e.fx.AddProjectile(ent.Projectile, ent.X, ent.Y, t, projectileSpeed, dmg, ent.Side, ent.Splash, e.now)
		return
	}
	e.ApplyDamage(t, dmg, DamageSource{Side: ent.Side, Splash: ent.Splash, X: t.X, Y: t.Y})
}

func (e *Engine) onProjectileHit(t *core.Entity, dmg float64, p *effects.Projectile) {
	e.ApplyDamage(t, dmg, DamageSource{Side: p.Side, Splash: p.Splash, X: p.TargetX, Y: p.TargetY})
}

// ApplyDamage deals dmg to target after armor, never less than 0.5. Shields
// absorb first. Splash deals half damage to other enemies of src.Side within
// src.Splash of (src.X, src.Y).
func (e *Engine) ApplyDamage(target *core.Entity, dmg float64, src DamageSource) {
	hurt(target, math.Max(minDamage, dmg-target.Armor), e.now)

	if src.Splash <= 0 {
		return
	}
	for _, o := range e.entities {
		if o == target || o.Side == src.Side || !o.Alive() {
			continue
		}
		if math.Hypot(o.X-src.X, o.Y-src.Y) <= src.Splash {
			hurt(o, math.Max(minDamage, dmg*splashFactor-o.Armor), e.now)
		}
	}
	e.fx.AddEffect("explosion", src.X, src.Y, explosionEffectMs, src.Splash, e.now)
}

func hurt(ent *core.Entity, net, now float64) {
	if ent.Shield > 0 {
		if ent.Shield >= net {
			ent.Shield -= net
			net = 0
		} else {
			net -= ent.Shield
			ent.Shield = 0
		}
	}
	ent.HP -= net
	ent.LastHit = now
}
