package event

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/dialogue"
)

const (
	HealthUpdated    Type = "healthUpdate"
	DialogueShown    Type = "showDialogue"
	SceneReadied     Type = "sceneReady"
	SceneCompleted   Type = "sceneComplete"
	GameWon          Type = "victory"
	SlashSwung       Type = "slash"
	ActorHit         Type = "hit"
	EnemyDied        Type = "death"
	ProjectileImpact Type = "projectileImpact"
	CameraShake      Type = "screenShake"
	EnemyDefeated    Type = "enemyDefeated"
)

// HealthUpdate is pushed every frame.
type HealthUpdate struct {
	Lead      int
	Companion int
	Max       int
}

// ShowDialogue asks the presentation layer to play a script. The consumer
// must call Request.Complete once the player has read every line.
type ShowDialogue struct {
	Request *dialogue.Request
}

type SceneReady struct {
	Scene string
}

type SceneComplete struct {
	Scene string
}

type Victory struct{}

// Slash marks one melee swing by the lead.
type Slash struct {
	Pos        cp.Vector
	FacingLeft bool
}

// Hit is emitted for every damage application. Tint and NumberColor are the
// scene's feedback colours (empty for none).
type Hit struct {
	Entity      uint64
	Pos         cp.Vector
	Amount      int
	Player      bool
	Tint        string
	NumberColor string
}

// Death is emitted when an enemy's health reaches zero.
type Death struct {
	Entity uint64
	Pos    cp.Vector
	Boss   bool
	Sparks int
	Window float64
}

type Impact struct {
	Pos    cp.Vector
	Sparks int
}

type Shake struct {
	Seconds   float64
	Intensity float64
}

// Defeat is the internal notice that an enemy left the live set.
type Defeat struct {
	Entity uint64
	Boss   bool
}
