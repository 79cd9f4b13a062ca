package system

import (
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

// AISystem chases the nearer party member and rolls contact damage.
type AISystem struct {
	enemySpeed float64
	roll       Roller
	gate       Gate
	damage     *Damager
}

func NewAISystem(enemySpeed float64, roll Roller, gate Gate, damage *Damager) *AISystem {
	return &AISystem{enemySpeed: enemySpeed, roll: roll, gate: gate, damage: damage}
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil || !s.gate.open() {
		return
	}

	dt := w.Delta()
	for _, e := range w.Query(component.EnemyTagComponent.Kind(), component.AIComponent.Kind(), component.TransformComponent.Kind()) {
		if !live(w, e) {
			continue
		}
		ai, _ := ecs.Get(w, e, component.AIComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		target, d, ok := nearestPartyMember(w, transform.Pos)
		if !ok {
			return
		}

		if d > ai.MinDistance && d < ai.AggroRange {
			step := s.enemySpeed * ai.SpeedFactor * dt
			transform.Pos = clampToArena(w, stepToward(transform.Pos, target.Pos, step))
			transform.FacingLeft = target.Pos.X < transform.Pos.X
		}

		if ai.ContactChance > 0 && d < ai.ContactRadius && s.roll != nil {
			if s.roll.Float64() < ai.ContactChance {
				s.damage.DamagePlayer(w, target.Entity, ai.ContactDamage)
			}
		}
	}
}
