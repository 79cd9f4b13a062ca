package system

import (
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

// DyingSystem destroys defeated enemies once their death window has run out.
type DyingSystem struct{}

func NewDyingSystem() *DyingSystem {
	return &DyingSystem{}
}

func (s *DyingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.DyingComponent.Kind(), func(e ecs.Entity, dying *component.Dying) {
		if dying == nil {
			return
		}

		dying.Remaining -= dt
		if dying.Remaining > 0 {
			return
		}

		ecs.DestroyEntity(w, e)
	})
}
