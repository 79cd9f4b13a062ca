package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/crimsonsky/ecs/system"
)

// holdFrames is how long a key counts as held after its last press event.
// Terminals report no releases, so key repeat keeps a held key alive.
const holdFrames = 8

// termKeys is a system.KeySource fed by terminal key events.
type termKeys struct {
	frame int
	last  map[system.Key]int
	muted func() bool
}

func newTermKeys() *termKeys {
	return &termKeys{last: map[system.Key]int{}}
}

func (k *termKeys) Pressed(key system.Key) bool {
	if key == system.KeyAttack && k.muted != nil && k.muted() {
		return false
	}
	at, ok := k.last[key]
	return ok && k.frame-at < holdFrames
}

// Tick advances the frame counter; call once per simulated frame.
func (k *termKeys) Tick() {
	k.frame++
}

// Press records a key event. It returns false for keys the game ignores.
func (k *termKeys) Press(ev *tcell.EventKey) bool {
	key, ok := mapKey(ev)
	if !ok {
		return false
	}
	// A new horizontal or vertical direction replaces the opposite one so
	// turning does not wait for the hold window to lapse.
	switch key {
	case system.KeyLeft, system.KeyA:
		k.release(system.KeyRight, system.KeyD)
	case system.KeyRight, system.KeyD:
		k.release(system.KeyLeft, system.KeyA)
	case system.KeyUp, system.KeyW:
		k.release(system.KeyDown, system.KeyS)
	case system.KeyDown, system.KeyS:
		k.release(system.KeyUp, system.KeyW)
	}
	k.last[key] = k.frame
	return true
}

func (k *termKeys) release(keys ...system.Key) {
	for _, key := range keys {
		delete(k.last, key)
	}
}

func mapKey(ev *tcell.EventKey) (system.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return system.KeyUp, true
	case tcell.KeyDown:
		return system.KeyDown, true
	case tcell.KeyLeft:
		return system.KeyLeft, true
	case tcell.KeyRight:
		return system.KeyRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return system.KeyW, true
		case 'a', 'A':
			return system.KeyA, true
		case 's', 'S':
			return system.KeyS, true
		case 'd', 'D':
			return system.KeyD, true
		case ' ':
			return system.KeyAttack, true
		}
	}
	return 0, false
}
