package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

// NewProjectile spawns one boss projectile travelling along vel.
func NewProjectile(w *ecs.World, pos, vel cp.Vector, volley *component.BossVolley) (ecs.Entity, error) {
	if volley == nil {
		return 0, fmt.Errorf("projectile: nil volley")
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		Pos:        pos,
		Scale:      1,
		FacingLeft: vel.X < 0,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.ProjectileComponent.Kind(), &component.Projectile{
		Vel:       vel,
		Damage:    volley.Damage,
		HitRadius: volley.HitRadius,
		Sprite:    volley.Sprite,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add projectile: %w", err)
	}

	return entity, nil
}
