package system

import (
	"math"

	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

// InputSystem turns held keys into the lead's movement intent and a
// one-frame attack edge.
type InputSystem struct {
	keys       KeySource
	prevAttack bool
}

func NewInputSystem(keys KeySource) *InputSystem {
	return &InputSystem{keys: keys}
}

// SetKeySource swaps the key source, for hosts that rebuild input per frame.
func (i *InputSystem) SetKeySource(keys KeySource) {
	i.keys = keys
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	moveX, moveY, attack := i.sample()
	attackPressed := attack && !i.prevAttack
	i.prevAttack = attack

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.AttackPressed = attackPressed
	})
}

func (i *InputSystem) sample() (float64, float64, bool) {
	if i.keys == nil {
		return 0, 0, false
	}
	pressed := i.keys.Pressed

	moveX := 0.0
	switch {
	case pressed(KeyLeft) || pressed(KeyA):
		moveX = -1
	case pressed(KeyRight) || pressed(KeyD):
		moveX = 1
	}

	moveY := 0.0
	switch {
	case pressed(KeyUp) || pressed(KeyW):
		moveY = -1
	case pressed(KeyDown) || pressed(KeyS):
		moveY = 1
	}

	if moveX != 0 && moveY != 0 {
		moveX *= math.Sqrt2 / 2
		moveY *= math.Sqrt2 / 2
	}

	return moveX, moveY, pressed(KeyAttack)
}
