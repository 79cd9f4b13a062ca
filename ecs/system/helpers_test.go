package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/ecs/entity"
	"github.com/milk9111/crimsonsky/event"
	"github.com/milk9111/crimsonsky/prefabs"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

type fixedRoll float64

func (r fixedRoll) Float64() float64 { return float64(r) }

type recorder struct {
	events []event.Event
}

func (r *recorder) Emit(t event.Type, payload any) {
	r.events = append(r.events, event.Event{Type: t, Data: payload})
}

func (r *recorder) types() []event.Type {
	out := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) count(t event.Type) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func testSpec() *prefabs.SceneSpec {
	s := &prefabs.SceneSpec{
		Name:  "test",
		Arena: prefabs.ArenaSpec{Width: 800, Height: 600, Margin: 30, ProjectileMargin: 20},
		Party: prefabs.PartySpec{
			Lead: prefabs.ActorSpec{Name: "Soad", Sprite: "soad", X: 100, Y: 300},
			Companion: prefabs.CompanionSpec{
				ActorSpec: prefabs.ActorSpec{Name: "Gurbaaz", Sprite: "gurbaaz", X: 60, Y: 300},
			},
		},
		Roles: prefabs.RolesSpec{
			Minion: prefabs.RoleSpec{
				AggroRange:  200,
				MinDistance: 30,
				SpeedFactor: 1,
				MeleeDamage: 25,
				Contact:     prefabs.ContactSpec{Radius: 30, Chance: 0.02, Damage: 10},
			},
			Boss: prefabs.RoleSpec{
				AggroRange:      400,
				MinDistance:     100,
				SpeedFactor:     0.5,
				MeleeReachBonus: 50,
				MeleeDamage:     20,
			},
		},
		Dialogue: prefabs.SceneDialogueSpec{Victory: "won"},
	}
	s.ApplyDefaults()
	return s
}

type fixture struct {
	w         *ecs.World
	spec      *prefabs.SceneSpec
	lead      ecs.Entity
	companion ecs.Entity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	spec := testSpec()
	w := ecs.NewWorld()

	_, err := entity.NewArena(w, spec)
	require.NoError(t, err)
	lead, err := entity.NewLead(w, spec)
	require.NoError(t, err)
	companion, err := entity.NewCompanion(w, spec)
	require.NoError(t, err)

	return &fixture{w: w, spec: spec, lead: lead, companion: companion}
}

func (f *fixture) enemy(t *testing.T, role string, hp int, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewEnemy(f.w, f.spec, prefabs.EnemySpec{Name: role, Role: role, Sprite: role, Health: hp, Scale: 1, X: x, Y: y})
	require.NoError(t, err)
	return e
}

func (f *fixture) pos(e ecs.Entity) cp.Vector {
	t, ok := ecs.Get(f.w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	return t.Pos
}

func (f *fixture) place(e ecs.Entity, x, y float64) {
	if t, ok := ecs.Get(f.w, e, component.TransformComponent.Kind()); ok {
		t.Pos = cp.Vector{X: x, Y: y}
	}
}

func (f *fixture) health(e ecs.Entity) int {
	h, ok := ecs.Get(f.w, e, component.HealthComponent.Kind())
	if !ok {
		return -1
	}
	return h.Current
}
