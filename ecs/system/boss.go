package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/ecs/entity"
)

// BossSystem arms the volley timer of every boss with a ranged attack and
// spawns the projectiles when it fires.
type BossSystem struct {
	gate    Gate
	scripts map[string]*volleyScript
}

func NewBossSystem(gate Gate) *BossSystem {
	return &BossSystem{gate: gate, scripts: map[string]*volleyScript{}}
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.BossComponent.Kind(), component.BossRuntimeComponent.Kind()) {
		if !live(w, e) {
			continue
		}
		boss, _ := ecs.Get(w, e, component.BossComponent.Kind())
		rt, _ := ecs.Get(w, e, component.BossRuntimeComponent.Kind())
		if boss.Volley == nil || boss.Volley.Interval <= 0 || rt.VolleyTimer != 0 {
			continue
		}

		owner := e
		handle := w.Timers().Every(boss.Volley.Interval, func() {
			s.fire(w, owner)
		})
		rt.VolleyTimer = uint64(handle)
	}
}

// fire runs one volley. The boss may have died since the timer was armed.
func (s *BossSystem) fire(w *ecs.World, e ecs.Entity) {
	if !live(w, e) || !s.gate.open() {
		return
	}

	boss, ok := ecs.Get(w, e, component.BossComponent.Kind())
	if !ok || boss.Volley == nil {
		return
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}

	target, _, ok := nearestPartyMember(w, transform.Pos)
	if !ok {
		return
	}

	volley := boss.Volley
	muzzle := transform.Pos.Add(volley.Muzzle)
	bearing := target.Pos.Sub(muzzle).ToAngle()

	offsets := s.offsets(w, e, volley, bearing, muzzle, target.Pos)
	for _, off := range offsets {
		vel := cp.ForAngle(bearing + off).Mult(volley.Speed)
		if _, err := entity.NewProjectile(w, muzzle, vel, volley); err != nil {
			log.Printf("[boss] %s spawn projectile: %v", e, err)
		}
	}

	if rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind()); ok {
		rt.Volleys++
	}
}

func (s *BossSystem) offsets(w *ecs.World, e ecs.Entity, volley *component.BossVolley, bearing float64, muzzle, target cp.Vector) []float64 {
	if volley.Script == "" {
		return spreadOffsets(volley.Count, volley.Spread)
	}

	vs, err := s.script(volley.Script)
	if err == nil {
		var offsets []float64
		offsets, err = vs.volley(buildVolleyEngine(w, e, bearing, muzzle, target))
		if err == nil {
			return offsets
		}
	}

	log.Printf("[boss] %s script %s: %v; using descriptor offsets", e, volley.Script, err)
	return spreadOffsets(volley.Count, volley.Spread)
}

func (s *BossSystem) script(path string) (*volleyScript, error) {
	if vs, ok := s.scripts[path]; ok {
		return vs, nil
	}
	vs, err := loadVolleyScript(path)
	if err != nil {
		return nil, err
	}
	s.scripts[path] = vs
	return vs, nil
}

// spreadOffsets returns count angles spaced by spread and centred on zero.
func spreadOffsets(count int, spread float64) []float64 {
	if count <= 0 {
		return nil
	}
	out := make([]float64, count)
	mid := float64(count-1) / 2
	for i := range out {
		out[i] = (float64(i) - mid) * spread
		if math.Abs(out[i]) < 1e-12 {
			out[i] = 0
		}
	}
	return out
}
