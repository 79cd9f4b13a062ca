package system

import (
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

// CooldownSystem counts cooldowns down and removes them once finished.
type CooldownSystem struct{}

func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

func (s *CooldownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.CooldownComponent.Kind(), func(e ecs.Entity, cd *component.Cooldown) {
		if cd == nil {
			return
		}
		cd.Remaining -= dt
		if cd.Remaining > 0 {
			return
		}

		_ = ecs.Remove(w, e, component.CooldownComponent.Kind())
	})
}
