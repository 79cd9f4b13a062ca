package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/prefabs"
)

// NewLead creates the input-driven party leader.
func NewLead(w *ecs.World, spec *prefabs.SceneSpec) (ecs.Entity, error) {
	entity, err := newPartyMember(w, spec, spec.Party.Lead, component.RolePlayerLead)
	if err != nil {
		return 0, fmt.Errorf("lead: %w", err)
	}

	if err := ecs.Add(w, entity, component.LeadTagComponent.Kind(), &component.LeadTag{}); err != nil {
		return 0, fmt.Errorf("lead: add tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("lead: add input: %w", err)
	}

	return entity, nil
}

// NewCompanion creates the follower.
func NewCompanion(w *ecs.World, spec *prefabs.SceneSpec) (ecs.Entity, error) {
	entity, err := newPartyMember(w, spec, spec.Party.Companion.ActorSpec, component.RolePlayerCompanion)
	if err != nil {
		return 0, fmt.Errorf("companion: %w", err)
	}

	if err := ecs.Add(w, entity, component.CompanionTagComponent.Kind(), &component.CompanionTag{}); err != nil {
		return 0, fmt.Errorf("companion: add tag: %w", err)
	}

	return entity, nil
}

func newPartyMember(w *ecs.World, spec *prefabs.SceneSpec, actor prefabs.ActorSpec, role component.Role) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.ActorComponent.Kind(), &component.Actor{
		Role:   role,
		Sprite: actor.Sprite,
		Name:   actor.Name,
	}); err != nil {
		return 0, fmt.Errorf("add actor: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		Pos:   cp.Vector{X: actor.X, Y: actor.Y},
		Scale: actor.Scale,
	}); err != nil {
		return 0, fmt.Errorf("add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{
		Current: spec.Party.Health,
		Max:     spec.Party.Health,
	}); err != nil {
		return 0, fmt.Errorf("add health: %w", err)
	}

	return entity, nil
}
