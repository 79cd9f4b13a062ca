package system

import (
	"testing"
	"time"

	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/event"
	"github.com/milk9111/crimsonsky/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMelee(spec *prefabs.SceneSpec) Melee {
	return Melee{Range: spec.Party.Melee.Range, Cooldown: spec.Party.Melee.Cooldown, SlashOffset: spec.Party.Melee.Offset()}
}

func pressAttack(f *fixture) {
	in, _ := ecs.Get(f.w, f.lead, component.InputComponent.Kind())
	in.AttackPressed = true
}

func TestPlayerControllerMovesAndClamps(t *testing.T) {
	f := newFixture(t)
	f.w.AddSystem(NewPlayerControllerSystem(f.spec.Party.Speed))
	in, _ := ecs.Get(f.w, f.lead, component.InputComponent.Kind())

	in.MoveX = 1
	f.w.Update(time.Second)
	assert.InDelta(t, 260, f.pos(f.lead).X, 1e-9)
	tr, _ := ecs.Get(f.w, f.lead, component.TransformComponent.Kind())
	assert.False(t, tr.FacingLeft)

	in.MoveX, in.MoveY = -1, 0
	for i := 0; i < 20; i++ {
		f.w.Update(time.Second)
	}
	assert.Equal(t, 30.0, f.pos(f.lead).X)
	assert.True(t, tr.FacingLeft)

	in.MoveX, in.MoveY = 0, 1
	for i := 0; i < 20; i++ {
		f.w.Update(time.Second)
	}
	assert.Equal(t, 570.0, f.pos(f.lead).Y)
	assert.True(t, tr.FacingLeft, "facing is kept without horizontal input")
}

func TestCombatHitsEnemiesInReach(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	dmg := NewDamager(Feedback{}, rec)
	f.w.AddSystem(NewCombatSystem(testMelee(f.spec), dmg, rec))

	near := f.enemy(t, prefabs.RoleMinion, 30, 140, 300)
	far := f.enemy(t, prefabs.RoleMinion, 30, 300, 300)
	boss := f.enemy(t, prefabs.RoleBoss, 200, 170, 300)

	pressAttack(f)
	f.w.Update(frame)

	assert.Equal(t, 5, f.health(near))
	assert.Equal(t, 30, f.health(far))
	assert.Equal(t, 180, f.health(boss), "boss reach bonus extends the swing")
	assert.Equal(t, 1, rec.count(event.SlashSwung))
	assert.Equal(t, 2, rec.count(event.ActorHit))
}

func TestCombatRespectsCooldown(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	f.w.AddSystem(NewCombatSystem(testMelee(f.spec), NewDamager(Feedback{}, rec), rec))
	f.w.AddSystem(NewCooldownSystem())

	pressAttack(f)
	f.w.Update(frame)
	f.w.Update(200 * time.Millisecond)
	f.w.Update(100 * time.Millisecond)
	assert.Equal(t, 1, rec.count(event.SlashSwung))
	assert.False(t, ecs.Has(f.w, f.lead, component.CooldownComponent.Kind()))

	f.w.Update(frame)
	assert.Equal(t, 2, rec.count(event.SlashSwung))
}

func TestSlashPositionFollowsFacing(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	f.w.AddSystem(NewCombatSystem(testMelee(f.spec), NewDamager(Feedback{}, rec), rec))

	tr, _ := ecs.Get(f.w, f.lead, component.TransformComponent.Kind())
	tr.FacingLeft = true
	pressAttack(f)
	f.w.Update(frame)

	require.Len(t, rec.events, 1)
	slash := rec.events[0].Data.(event.Slash)
	assert.Equal(t, 80.0, slash.Pos.X)
	assert.True(t, slash.FacingLeft)
}

func TestDamageEnemyLifecycle(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	dmg := NewDamager(Feedback{DeathWindow: 0.3, DeathSparks: 8}, rec)
	minion := f.enemy(t, prefabs.RoleMinion, 30, 400, 300)

	assert.False(t, dmg.DamageEnemy(f.w, minion, 25))
	assert.Equal(t, 5, f.health(minion))

	assert.True(t, dmg.DamageEnemy(f.w, minion, 25))
	assert.Equal(t, 0, f.health(minion), "health never goes below zero")
	assert.True(t, ecs.Has(f.w, minion, component.DyingComponent.Kind()))
	assert.Equal(t, []event.Type{event.ActorHit, event.ActorHit, event.EnemyDied, event.EnemyDefeated}, rec.types())

	death := rec.events[2].Data.(event.Death)
	assert.Equal(t, 8, death.Sparks)
	assert.False(t, death.Boss)

	// A dying enemy takes no further damage.
	assert.False(t, dmg.DamageEnemy(f.w, minion, 25))
	assert.Len(t, rec.events, 4)

	ecs.DestroyEntity(f.w, minion)
	assert.False(t, dmg.DamageEnemy(f.w, minion, 25))
	assert.Len(t, rec.events, 4)
}

func TestDamageBossCancelsVolleyAndShakes(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	dmg := NewDamager(Feedback{ShakeSeconds: 0.5, ShakeIntensity: 0.02}, rec)
	boss := f.enemy(t, prefabs.RoleBoss, 20, 700, 300)

	rt, _ := ecs.Get(f.w, boss, component.BossRuntimeComponent.Kind())
	handle := f.w.Timers().Every(2*time.Second, func() {})
	rt.VolleyTimer = uint64(handle)

	require.True(t, dmg.DamageEnemy(f.w, boss, 20))
	assert.False(t, f.w.Timers().Active(handle))
	assert.Zero(t, rt.VolleyTimer)
	assert.Equal(t, []event.Type{event.ActorHit, event.EnemyDied, event.CameraShake, event.EnemyDefeated}, rec.types())
	assert.True(t, rec.events[3].Data.(event.Defeat).Boss)
}

func TestDamagePlayerClampsAtZero(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	dmg := NewDamager(Feedback{PlayerTint: "#ff0000"}, rec)

	for i := 0; i < 3; i++ {
		assert.True(t, dmg.DamagePlayer(f.w, f.lead, 40))
		h := f.health(f.lead)
		assert.GreaterOrEqual(t, h, 0)
		assert.LessOrEqual(t, h, 100)
	}
	assert.Equal(t, 0, f.health(f.lead))
	assert.False(t, dmg.DamagePlayer(f.w, f.lead, 0))

	hit := rec.events[0].Data.(event.Hit)
	assert.True(t, hit.Player)
	assert.Equal(t, "#ff0000", hit.Tint)
}

func TestDyingEnemyIsRemovedAfterWindow(t *testing.T) {
	f := newFixture(t)
	dmg := NewDamager(Feedback{DeathWindow: 0.3}, nil)
	f.w.AddSystem(NewDyingSystem())
	minion := f.enemy(t, prefabs.RoleMinion, 10, 400, 300)

	require.True(t, dmg.DamageEnemy(f.w, minion, 25))
	f.w.Update(200 * time.Millisecond)
	assert.True(t, f.w.IsAlive(minion))
	f.w.Update(200 * time.Millisecond)
	assert.False(t, f.w.IsAlive(minion))
}

func TestPartyHealth(t *testing.T) {
	f := newFixture(t)
	NewDamager(Feedback{}, nil).DamagePlayer(f.w, f.companion, 30)

	assert.Equal(t, event.HealthUpdate{Lead: 100, Companion: 70, Max: 100}, PartyHealth(f.w))
}
