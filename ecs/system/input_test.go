package system

import (
	"math"
	"testing"

	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputDirections(t *testing.T) {
	d := math.Sqrt2 / 2
	tests := []struct {
		name   string
		keys   KeySet
		wantX  float64
		wantY  float64
		moving bool
	}{
		{"idle", KeySet{}, 0, 0, false},
		{"left", KeySet{KeyLeft: true}, -1, 0, true},
		{"right_wasd", KeySet{KeyD: true}, 1, 0, true},
		{"up", KeySet{KeyUp: true}, 0, -1, true},
		{"down_wasd", KeySet{KeyS: true}, 0, 1, true},
		{"up_left", KeySet{KeyUp: true, KeyLeft: true}, -d, -d, true},
		{"up_right", KeySet{KeyW: true, KeyD: true}, d, -d, true},
		{"down_left", KeySet{KeyS: true, KeyA: true}, -d, d, true},
		{"down_right", KeySet{KeyDown: true, KeyRight: true}, d, d, true},
		{"left_beats_right", KeySet{KeyLeft: true, KeyRight: true}, -1, 0, true},
		{"up_beats_down", KeySet{KeyW: true, KeyS: true}, 0, -1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))

			w.AddSystem(NewInputSystem(tc.keys))
			w.Update(frame)

			in, _ := ecs.Get(w, e, component.InputComponent.Kind())
			assert.InDelta(t, tc.wantX, in.MoveX, 1e-9)
			assert.InDelta(t, tc.wantY, in.MoveY, 1e-9)

			length := math.Hypot(in.MoveX, in.MoveY)
			if tc.moving {
				assert.InDelta(t, 1, length, 1e-9)
			} else {
				assert.Zero(t, length)
			}
		})
	}
}

func TestInputAttackEdge(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))

	keys := KeySet{}
	w.AddSystem(NewInputSystem(keys))
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())

	var got []bool
	for _, held := range []bool{true, true, true, false, true, false} {
		keys[KeyAttack] = held
		w.Update(frame)
		got = append(got, in.AttackPressed)
	}

	assert.Equal(t, []bool{true, false, false, false, true, false}, got)
}

func TestInputWithoutSource(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: 1, AttackPressed: true}))

	w.AddSystem(NewInputSystem(nil))
	w.Update(frame)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	assert.Zero(t, in.MoveX)
	assert.False(t, in.AttackPressed)
}
