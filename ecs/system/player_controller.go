package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

// PlayerControllerSystem moves the lead by its input intent.
type PlayerControllerSystem struct {
	speed float64
}

func NewPlayerControllerSystem(speed float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{speed: speed}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	for _, e := range w.Query(component.LeadTagComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind()) {
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		if input.MoveX < 0 {
			transform.FacingLeft = true
		} else if input.MoveX > 0 {
			transform.FacingLeft = false
		}

		step := cp.Vector{X: input.MoveX, Y: input.MoveY}.Mult(p.speed * dt)
		transform.Pos = clampToArena(w, transform.Pos.Add(step))
	}
}
