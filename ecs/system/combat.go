package system

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/event"
)

// Melee is the lead's sword tuning.
type Melee struct {
	Range       float64
	Cooldown    time.Duration
	SlashOffset float64
}

// CombatSystem resolves the lead's melee swing against every live enemy.
type CombatSystem struct {
	melee  Melee
	damage *Damager
	out    Emitter
}

func NewCombatSystem(melee Melee, damage *Damager, out Emitter) *CombatSystem {
	return &CombatSystem{melee: melee, damage: damage, out: emitterOrNop(out)}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, lead := range w.Query(component.LeadTagComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind()) {
		input, _ := ecs.Get(w, lead, component.InputComponent.Kind())
		if !input.AttackPressed || ecs.Has(w, lead, component.CooldownComponent.Kind()) {
			continue
		}
		transform, _ := ecs.Get(w, lead, component.TransformComponent.Kind())
		s.swing(w, lead, transform)
	}
}

func (s *CombatSystem) swing(w *ecs.World, lead ecs.Entity, transform *component.Transform) {
	_ = ecs.Add(w, lead, component.CooldownComponent.Kind(), &component.Cooldown{Remaining: s.melee.Cooldown.Seconds()})

	offset := s.melee.SlashOffset
	if transform.FacingLeft {
		offset = -offset
	}
	s.out.Emit(event.SlashSwung, event.Slash{
		Pos:        transform.Pos.Add(cp.Vector{X: offset}),
		FacingLeft: transform.FacingLeft,
	})

	for _, e := range w.Query(component.EnemyTagComponent.Kind(), component.AIComponent.Kind(), component.TransformComponent.Kind()) {
		if !live(w, e) {
			continue
		}
		ai, _ := ecs.Get(w, e, component.AIComponent.Kind())
		et, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		if transform.Pos.Distance(et.Pos) < s.melee.Range+ai.MeleeReachBonus {
			s.damage.DamageEnemy(w, e, ai.MeleeDamage)
		}
	}
}
