package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/prefabs"
)

// NewEnemy creates one roster entry with the AI profile of its role. Bosses
// also get the volley descriptor of the scene.
func NewEnemy(w *ecs.World, spec *prefabs.SceneSpec, enemySpec prefabs.EnemySpec) (ecs.Entity, error) {
	role := component.RoleMinion
	if enemySpec.Role == prefabs.RoleBoss {
		role = component.RoleBoss
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.ActorComponent.Kind(), &component.Actor{
		Role:   role,
		Sprite: enemySpec.Sprite,
		Name:   enemySpec.Name,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add actor: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		Pos:   cp.Vector{X: enemySpec.X, Y: enemySpec.Y},
		Scale: enemySpec.Scale,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{
		Current: enemySpec.Health,
		Max:     enemySpec.Health,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	roleSpec := spec.Role(enemySpec.Role)
	if err := ecs.Add(w, entity, component.AIComponent.Kind(), &component.AI{
		AggroRange:      roleSpec.AggroRange,
		MinDistance:     roleSpec.MinDistance,
		SpeedFactor:     roleSpec.SpeedFactor,
		MeleeReachBonus: roleSpec.MeleeReachBonus,
		MeleeDamage:     roleSpec.MeleeDamage,
		ContactRadius:   roleSpec.Contact.Radius,
		ContactChance:   roleSpec.Contact.Chance,
		ContactDamage:   roleSpec.Contact.Damage,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add ai: %w", err)
	}

	if role != component.RoleBoss {
		return entity, nil
	}

	boss := &component.Boss{DisplayName: enemySpec.Name}
	if v := spec.BossAttack; v != nil {
		boss.Volley = &component.BossVolley{
			Interval:  v.Interval,
			Count:     v.Count,
			Spread:    v.Spread,
			Speed:     v.Speed,
			Damage:    v.Damage,
			HitRadius: v.HitRadius,
			Muzzle:    cp.Vector{X: v.Muzzle.X, Y: v.Muzzle.Y},
			Sprite:    v.Sprite,
			Script:    v.Script,
		}
	}
	if err := ecs.Add(w, entity, component.BossComponent.Kind(), boss); err != nil {
		return 0, fmt.Errorf("enemy: add boss: %w", err)
	}

	if err := ecs.Add(w, entity, component.BossRuntimeComponent.Kind(), &component.BossRuntime{}); err != nil {
		return 0, fmt.Errorf("enemy: add boss runtime: %w", err)
	}

	return entity, nil
}
