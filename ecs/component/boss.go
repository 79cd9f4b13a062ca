package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

// BossVolley describes the periodic ranged attack of a boss.
type BossVolley struct {
	Interval  time.Duration
	Count     int
	Spread    float64
	Speed     float64
	Damage    int
	HitRadius float64
	Muzzle    cp.Vector
	Sprite    string
	Script    string
}

type Boss struct {
	DisplayName string
	Volley      *BossVolley
}

// BossRuntime stores runtime-only state. VolleyTimer is the ecs timer handle
// owning the volley cadence; zero means no timer.
type BossRuntime struct {
	VolleyTimer uint64
	Volleys     int
}

var BossComponent = NewComponent[Boss]()
var BossRuntimeComponent = NewComponent[BossRuntime]()
