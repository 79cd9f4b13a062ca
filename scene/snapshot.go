package scene

import (
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

// ActorView is a read-only copy of one actor.
type ActorView struct {
	Entity     ecs.Entity `yaml:"entity"`
	Name       string     `yaml:"name"`
	Sprite     string     `yaml:"sprite"`
	Role       string     `yaml:"role"`
	X          float64    `yaml:"x"`
	Y          float64    `yaml:"y"`
	Scale      float64    `yaml:"scale"`
	FacingLeft bool       `yaml:"facing_left"`
	Health     int        `yaml:"health"`
	MaxHealth  int        `yaml:"max_health"`
	Dying      bool       `yaml:"dying,omitempty"`
}

func (a ActorView) Pos() cp.Vector {
	return cp.Vector{X: a.X, Y: a.Y}
}

// ProjectileView is a read-only copy of one projectile.
type ProjectileView struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Sprite string  `yaml:"sprite"`
}

// Snapshot is the observable state of a scene at one instant. Hosts without
// access to the world draw from it.
type Snapshot struct {
	Scene        string           `yaml:"scene"`
	State        string           `yaml:"state"`
	Elapsed      time.Duration    `yaml:"elapsed"`
	BossDefeated bool             `yaml:"boss_defeated"`
	Remaining    int              `yaml:"remaining_enemies"`
	Lead         ActorView        `yaml:"lead"`
	Companion    ActorView        `yaml:"companion"`
	Enemies      []ActorView      `yaml:"enemies"`
	Projectiles  []ProjectileView `yaml:"projectiles,omitempty"`
}

// Snapshot copies the current state out of the world.
func (e *Engine) Snapshot() Snapshot {
	w := e.world
	snap := Snapshot{
		Scene:        e.spec.Name,
		State:        e.state.Current(),
		Elapsed:      w.Elapsed(),
		BossDefeated: e.state.BossDefeated,
		Remaining:    e.RemainingEnemies(),
		Lead:         actorView(w, e.lead),
		Companion:    actorView(w, e.companion),
	}

	enemies := w.Query(component.EnemyTagComponent.Kind())
	sort.Slice(enemies, func(i, j int) bool { return enemies[i] < enemies[j] })
	for _, en := range enemies {
		snap.Enemies = append(snap.Enemies, actorView(w, en))
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Projectile, t *component.Transform) {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{X: t.Pos.X, Y: t.Pos.Y, Sprite: p.Sprite})
	})

	return snap
}

func actorView(w *ecs.World, e ecs.Entity) ActorView {
	view := ActorView{Entity: e}
	if actor, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok {
		view.Name = actor.Name
		view.Sprite = actor.Sprite
		view.Role = actor.Role.String()
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		view.X, view.Y = t.Pos.X, t.Pos.Y
		view.Scale = t.Scale
		view.FacingLeft = t.FacingLeft
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		view.Health = h.Current
		view.MaxHealth = h.Max
	}
	view.Dying = ecs.Has(w, e, component.DyingComponent.Kind())
	return view
}
