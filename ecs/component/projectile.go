package component

import "github.com/jakecoffman/cp"

type Projectile struct {
	// Vel is in units per second.
	Vel       cp.Vector
	Damage    int
	HitRadius float64
	Sprite    string
}

var ProjectileComponent = NewComponent[Projectile]()
