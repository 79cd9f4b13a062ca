package system

import (
	"testing"
	"time"

	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/prefabs"
	"github.com/stretchr/testify/assert"
)

func TestAIChasesNearestPartyMember(t *testing.T) {
	f := newFixture(t)
	f.w.AddSystem(NewAISystem(80, fixedRoll(0.99), nil, NewDamager(Feedback{}, nil)))
	minion := f.enemy(t, prefabs.RoleMinion, 30, 150, 300)

	f.w.Update(100 * time.Millisecond)

	assert.InDelta(t, 142, f.pos(minion).X, 1e-9)
	tr, _ := ecs.Get(f.w, minion, component.TransformComponent.Kind())
	assert.True(t, tr.FacingLeft)
}

func TestAIStaysPutOutsideBand(t *testing.T) {
	tests := []struct {
		name string
		x    float64
	}{
		{"beyond_aggro", 500},
		{"inside_min_distance", 120},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.w.AddSystem(NewAISystem(80, fixedRoll(0.99), nil, NewDamager(Feedback{}, nil)))
			minion := f.enemy(t, prefabs.RoleMinion, 30, tc.x, 300)

			f.w.Update(100 * time.Millisecond)
			assert.Equal(t, tc.x, f.pos(minion).X)
		})
	}
}

func TestAIGateBlocksMovementAndContact(t *testing.T) {
	f := newFixture(t)
	open := false
	f.w.AddSystem(NewAISystem(80, fixedRoll(0), func() bool { return open }, NewDamager(Feedback{}, nil)))
	minion := f.enemy(t, prefabs.RoleMinion, 30, 120, 300)
	chaser := f.enemy(t, prefabs.RoleMinion, 30, 200, 300)

	for i := 0; i < 10; i++ {
		f.w.Update(frame)
	}
	assert.Equal(t, 100, f.health(f.lead))
	assert.Equal(t, 200.0, f.pos(chaser).X)

	open = true
	f.w.Update(frame)
	assert.Equal(t, 90, f.health(f.lead))
	assert.Less(t, f.pos(chaser).X, 200.0)
	assert.Equal(t, 120.0, f.pos(minion).X)
}

func TestAIContactRoll(t *testing.T) {
	tests := []struct {
		name string
		roll fixedRoll
		want int
	}{
		{"hit", 0.01, 90},
		{"miss", 0.02, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.w.AddSystem(NewAISystem(80, tc.roll, nil, NewDamager(Feedback{}, nil)))
			f.enemy(t, prefabs.RoleMinion, 30, 120, 300)

			f.w.Update(frame)
			assert.Equal(t, tc.want, f.health(f.lead))
		})
	}
}

func TestAIContactTieGoesToLead(t *testing.T) {
	f := newFixture(t)
	f.w.AddSystem(NewAISystem(80, fixedRoll(0), nil, NewDamager(Feedback{}, nil)))
	f.enemy(t, prefabs.RoleMinion, 30, 80, 300)

	f.w.Update(frame)
	assert.Equal(t, 90, f.health(f.lead))
	assert.Equal(t, 100, f.health(f.companion))
}

func TestAIIgnoresDyingEnemies(t *testing.T) {
	f := newFixture(t)
	f.w.AddSystem(NewAISystem(80, fixedRoll(0), nil, NewDamager(Feedback{}, nil)))
	minion := f.enemy(t, prefabs.RoleMinion, 30, 120, 300)
	_ = ecs.Add(f.w, minion, component.DyingComponent.Kind(), &component.Dying{Remaining: 1})

	f.w.Update(frame)
	assert.Equal(t, 100, f.health(f.lead))
}

func TestCompanionFollowsLead(t *testing.T) {
	f := newFixture(t)
	f.w.AddSystem(NewCompanionSystem(f.spec.Party.Speed, f.spec.Party.Companion.FollowDistance, f.spec.Party.Companion.SpeedFactor))

	f.place(f.lead, 300, 300)
	f.w.Update(time.Second)
	assert.InDelta(t, 188, f.pos(f.companion).X, 1e-9)

	f.place(f.companion, 260, 300)
	f.w.Update(time.Second)
	assert.Equal(t, 260.0, f.pos(f.companion).X, "within follow distance the companion waits")
}
