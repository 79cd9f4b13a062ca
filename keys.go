package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/crimsonsky/ecs/system"
)

var keyBindings = map[system.Key]ebiten.Key{
	system.KeyUp:     ebiten.KeyArrowUp,
	system.KeyDown:   ebiten.KeyArrowDown,
	system.KeyLeft:   ebiten.KeyArrowLeft,
	system.KeyRight:  ebiten.KeyArrowRight,
	system.KeyW:      ebiten.KeyW,
	system.KeyA:      ebiten.KeyA,
	system.KeyS:      ebiten.KeyS,
	system.KeyD:      ebiten.KeyD,
	system.KeyAttack: ebiten.KeySpace,
}

// ebitenKeys reads the keyboard. Attack is muted while a dialogue is open so
// the key that advances the text does not also swing the sword.
type ebitenKeys struct {
	muted func() bool
}

func (k ebitenKeys) Pressed(key system.Key) bool {
	if key == system.KeyAttack && k.muted != nil && k.muted() {
		return false
	}
	ek, ok := keyBindings[key]
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(ek)
}
