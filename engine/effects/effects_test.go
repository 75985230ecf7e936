package effects

import (
	"testing"

	"github.com/1siamBot/rts-sim/engine/core"
)

func target(x, y float64) *core.Entity {
	e := &core.Entity{X: x, Y: y}
	e.HP = 100
	return e
}

func TestProjectileHomesAndHits(t *testing.T) {
	m := NewManager()
	tgt := target(200, 0)
	m.AddProjectile("bullet", 0, 0, tgt, 480, 10, core.Player, 0, 0)

	var hits int
	var dealt float64
	apply := func(e *core.Entity, dmg float64, p *Projectile) {
		hits++
		dealt += dmg
	}

	now := 0.0
	for i := 0; i < 100 && len(m.Projectiles) > 0; i++ {
		now += 16
		m.Update(now, 16, apply)
	}
	if hits != 1 || dealt != 10 {
		t.Fatalf("expected one hit for 10, got %d hits for %f", hits, dealt)
	}
	if len(m.Effects) != 1 || m.Effects[0].Kind != "hit" {
		t.Fatalf("expected a hit effect, got %+v", m.Effects)
	}
}

func TestParticleLeavesBlueHit(t *testing.T) {
	m := NewManager()
	tgt := target(10, 0)
	m.AddProjectile("particle", 0, 0, tgt, 480, 5, core.Player, 0, 0)
	m.Update(16, 16, func(*core.Entity, float64, *Projectile) {})
	if len(m.Effects) != 1 || m.Effects[0].Kind != "blueHit" {
		t.Fatalf("expected blueHit, got %+v", m.Effects)
	}
}

func TestProjectileFollowsMovingTarget(t *testing.T) {
	m := NewManager()
	tgt := target(300, 0)
	p := m.AddProjectile("bullet", 0, 0, tgt, 480, 5, core.Player, 0, 0)
	tgt.Y = 300
	m.Update(16, 16, func(*core.Entity, float64, *Projectile) {})
	if p.TargetY != 300 {
		t.Fatalf("expected aim point to follow target, got %f", p.TargetY)
	}
	if p.Y <= 0 {
		t.Fatal("projectile should curve toward the new position")
	}
}

func TestDeadTargetTakesNoDamage(t *testing.T) {
	m := NewManager()
	tgt := target(10, 0)
	m.AddProjectile("bullet", 0, 0, tgt, 480, 5, core.Player, 0, 0)
	tgt.HP = 0
	called := false
	m.Update(16, 16, func(*core.Entity, float64, *Projectile) { called = true })
	if called {
		t.Fatal("damage applied to a dead target")
	}
	if len(m.Projectiles) != 0 {
		t.Fatal("projectile should have been removed")
	}
}

func TestProjectileExpires(t *testing.T) {
	m := NewManager()
	tgt := target(100000, 0)
	m.AddProjectile("shell", 0, 0, tgt, 10, 5, core.Player, 0, 0)
	called := false
	m.Update(ProjectileLifetime+1, 16, func(*core.Entity, float64, *Projectile) { called = true })
	if len(m.Projectiles) != 0 || called {
		t.Fatal("expired projectile should vanish without damage")
	}
}

func TestEffectsPruned(t *testing.T) {
	m := NewManager()
	m.AddEffect("move", 0, 0, 800, 20, 0)
	m.AddEffect("death", 0, 0, 600, 0, 0)
	m.Update(700, 16, nil)
	if len(m.Effects) != 1 || m.Effects[0].Kind != "move" {
		t.Fatalf("expected only the move effect left, got %+v", m.Effects)
	}
	m.Update(800, 16, nil)
	if len(m.Effects) != 0 {
		t.Fatal("effects should be gone once their duration has passed")
	}
}
