package system

// Key is a logical input the lead responds to.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyAttack
)

// KeySource reports which logical keys are held this frame. Hosts adapt
// their keyboard APIs to it.
type KeySource interface {
	Pressed(k Key) bool
}

// KeySet is a KeySource backed by a set.
type KeySet map[Key]bool

func (s KeySet) Pressed(k Key) bool {
	return s[k]
}
