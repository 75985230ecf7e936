package effects

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
)

const (
	// ProjectileLifetime is how long a projectile may fly before it is dropped
	ProjectileLifetime = 4000.0
	// ImpactRadius ends a projectile's flight
	ImpactRadius = 15.0
	// DamageRadius is how close the projectile must be for its damage to land
	DamageRadius = 25.0
	hitDuration  = 300.0
)

// Projectile is a homing shot. Damage lands on arrival, not on fire.
type Projectile struct {
	Kind             string
	X, Y             float64
	TargetX, TargetY float64
	Speed            float64 // pixels per second
	Damage           float64
	Side             core.Side
	Target           *core.Entity
	Born             float64
	Splash           float64
}

// Effect is a short-lived visual marker
type Effect struct {
	Kind     string
	X, Y     float64
	Start    float64
	Duration float64
	Radius   float64
}

// Age returns the fraction of the effect's life that has passed
func (e *Effect) Age(now float64) float64 {
	if e.Duration <= 0 {
		return 1
	}
	return math.Min(1, (now-e.Start)/e.Duration)
}

// DamageFunc applies a landed projectile's damage
type DamageFunc func(target *core.Entity, damage float64, p *Projectile)

// Manager owns in-flight projectiles and visual effects. All times are
// simulation milliseconds.
type Manager struct {
	Projectiles []*Projectile
	Effects     []*Effect
}

func NewManager() *Manager {
	return &Manager{}
}

// AddProjectile launches a projectile from (sx, sy) at target
func (m *Manager) AddProjectile(kind string, sx, sy float64, target *core.Entity, speed, damage float64, side core.Side, splash, now float64) *Projectile {
	p := &Projectile{
		Kind:    kind,
		X:       sx,
		Y:       sy,
		TargetX: target.X,
		TargetY: target.Y,
		Speed:   speed,
		Damage:  damage,
		Side:    side,
		Target:  target,
		Born:    now,
		Splash:  splash,
	}
	m.Projectiles = append(m.Projectiles, p)
	return p
}

// AddEffect adds a visual effect
func (m *Manager) AddEffect(kind string, x, y, duration, radius, now float64) *Effect {
	e := &Effect{Kind: kind, X: x, Y: y, Start: now, Duration: duration, Radius: radius}
	m.Effects = append(m.Effects, e)
	return e
}

// Update advances projectiles toward their targets and prunes expired effects.
// A projectile ends when within ImpactRadius of its aim point or older than
// ProjectileLifetime; its damage is applied only if it ended within
// DamageRadius of a target that is still alive.
func (m *Manager) Update(now, dt float64, apply DamageFunc) {
	live := m.Projectiles[:0]
	for _, p := range m.Projectiles {
		if p.Target.Alive() {
			p.TargetX = p.Target.X
			p.TargetY = p.Target.Y
		}

		dx := p.TargetX - p.X
		dy := p.TargetY - p.Y
		dist := math.Sqrt(dx*dx + dy*dy)

		if dist < ImpactRadius || now-p.Born > ProjectileLifetime {
			if dist < DamageRadius && p.Target.Alive() {
				apply(p.Target, p.Damage, p)
				kind := "hit"
				if p.Kind == "particle" {
					kind = "blueHit"
				}
				m.AddEffect(kind, p.TargetX, p.TargetY, hitDuration, 0, now)
			}
			continue
		}

		mv := math.Min(p.Speed*dt/1000, dist)
		p.X += dx / dist * mv
		p.Y += dy / dist * mv
		live = append(live, p)
	}
	for i := len(live); i < len(m.Projectiles); i++ {
		m.Projectiles[i] = nil
	}
	m.Projectiles = live

	effects := m.Effects[:0]
	for _, e := range m.Effects {
		if now-e.Start < e.Duration {
			effects = append(effects, e)
		}
	}
	for i := len(effects); i < len(m.Effects); i++ {
		m.Effects[i] = nil
	}
	m.Effects = effects
}
