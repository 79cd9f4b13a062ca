package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/event"
)

// Emitter receives outbound events. *event.Dispatcher satisfies it.
type Emitter interface {
	Emit(t event.Type, payload any)
}

// Roller supplies uniform samples in [0, 1). *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Gate reports whether enemies may act. The scene closes it while the intro
// dialogue is on screen.
type Gate func() bool

func (g Gate) open() bool {
	return g == nil || g()
}

type nopEmitter struct{}

func (nopEmitter) Emit(event.Type, any) {}

func emitterOrNop(out Emitter) Emitter {
	if out == nil {
		return nopEmitter{}
	}
	return out
}

// live reports whether e is an actor still taking part in combat.
func live(w *ecs.World, e ecs.Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	return !ecs.Has(w, e, component.DyingComponent.Kind())
}

func arenaBounds(w *ecs.World) (component.ArenaBounds, bool) {
	e, ok := ecs.First(w, component.ArenaBoundsComponent.Kind())
	if !ok {
		return component.ArenaBounds{}, false
	}
	b, ok := ecs.Get(w, e, component.ArenaBoundsComponent.Kind())
	if !ok {
		return component.ArenaBounds{}, false
	}
	return *b, true
}

func clampToArena(w *ecs.World, p cp.Vector) cp.Vector {
	b, ok := arenaBounds(w)
	if !ok {
		return p
	}
	return b.Clamp(p)
}

// partyMember is one player character as seen by enemies.
type partyMember struct {
	Entity ecs.Entity
	Pos    cp.Vector
}

// party returns the lead followed by the companion, skipping missing ones.
func party(w *ecs.World) []partyMember {
	out := make([]partyMember, 0, 2)
	for _, kind := range []component.Kind{component.LeadTagComponent.Kind(), component.CompanionTagComponent.Kind()} {
		e, ok := w.First(kind)
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		out = append(out, partyMember{Entity: e, Pos: t.Pos})
	}
	return out
}

// nearestPartyMember picks the closer player to pos. The lead wins ties.
func nearestPartyMember(w *ecs.World, pos cp.Vector) (partyMember, float64, bool) {
	var (
		best  partyMember
		bestD float64
		found bool
	)
	for _, m := range party(w) {
		d := pos.Distance(m.Pos)
		if !found || d < bestD {
			best, bestD, found = m, d, true
		}
	}
	return best, bestD, found
}

// stepToward moves from toward target by at most step.
func stepToward(from, target cp.Vector, step float64) cp.Vector {
	delta := target.Sub(from)
	dist := delta.Length()
	if dist == 0 || step <= 0 {
		return from
	}
	if step >= dist {
		return target
	}
	return from.Add(delta.Mult(step / dist))
}
