package system

import (
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

// CompanionSystem keeps the companion within followDistance of the lead.
type CompanionSystem struct {
	speed          float64
	followDistance float64
	speedFactor    float64
}

func NewCompanionSystem(speed, followDistance, speedFactor float64) *CompanionSystem {
	return &CompanionSystem{speed: speed, followDistance: followDistance, speedFactor: speedFactor}
}

func (s *CompanionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	lead, ok := w.First(component.LeadTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	leadTransform, _ := ecs.Get(w, lead, component.TransformComponent.Kind())

	dt := w.Delta()
	for _, e := range w.Query(component.CompanionTagComponent.Kind(), component.TransformComponent.Kind()) {
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		if transform.Pos.Distance(leadTransform.Pos) <= s.followDistance {
			continue
		}

		step := s.speed * s.speedFactor * dt
		transform.Pos = clampToArena(w, stepToward(transform.Pos, leadTransform.Pos, step))
		transform.FacingLeft = leadTransform.Pos.X < transform.Pos.X
	}
}
