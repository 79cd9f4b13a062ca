package system

import (
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/event"
)

// ProjectileSystem moves projectiles, removes the ones that left the arena
// and applies hits on the party. The lead is checked before the companion
// and a projectile hits at most once.
type ProjectileSystem struct {
	damage *Damager
	out    Emitter
}

func NewProjectileSystem(damage *Damager, out Emitter) *ProjectileSystem {
	return &ProjectileSystem{damage: damage, out: emitterOrNop(out)}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	bounds, hasBounds := arenaBounds(w)
	members := party(w)
	sparks := s.damage.Feedback().ImpactSparks

	for _, e := range w.Query(component.ProjectileComponent.Kind(), component.TransformComponent.Kind()) {
		p, _ := ecs.Get(w, e, component.ProjectileComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		transform.Pos = transform.Pos.Add(p.Vel.Mult(dt))

		if hasBounds && !bounds.Outer().ContainsVect(transform.Pos) {
			ecs.DestroyEntity(w, e)
			continue
		}

		for _, m := range members {
			if transform.Pos.Distance(m.Pos) >= p.HitRadius {
				continue
			}
			s.damage.DamagePlayer(w, m.Entity, p.Damage)
			s.out.Emit(event.ProjectileImpact, event.Impact{Pos: transform.Pos, Sparks: sparks})
			ecs.DestroyEntity(w, e)
			break
		}
	}
}
