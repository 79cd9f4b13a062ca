package system

import (
	"log"

	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/event"
)

// Feedback holds the per-scene presentation hints attached to damage events.
type Feedback struct {
	HitTint        string
	NumberColor    string
	PlayerTint     string
	DeathSparks    int
	ImpactSparks   int
	DeathWindow    float64
	ShakeSeconds   float64
	ShakeIntensity float64
}

// Damager applies damage to actors and reports the outcome.
type Damager struct {
	fx  Feedback
	out Emitter
}

func NewDamager(fx Feedback, out Emitter) *Damager {
	return &Damager{fx: fx, out: emitterOrNop(out)}
}

// Feedback returns the hints this damager was built with.
func (d *Damager) Feedback() Feedback {
	return d.fx
}

// DamageEnemy subtracts amount from an enemy. Destroyed or dying enemies are
// ignored. Returns true when the hit dropped the enemy to zero.
func (d *Damager) DamageEnemy(w *ecs.World, e ecs.Entity, amount int) bool {
	if w == nil || !live(w, e) || amount <= 0 {
		return false
	}

	health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	actor, _ := ecs.Get(w, e, component.ActorComponent.Kind())

	applyDamage(health, amount)

	hit := event.Hit{
		Entity:      uint64(e),
		Amount:      amount,
		Tint:        d.fx.HitTint,
		NumberColor: d.fx.NumberColor,
	}
	if transform != nil {
		hit.Pos = transform.Pos
	}
	d.out.Emit(event.ActorHit, hit)

	if health.Current > 0 {
		return false
	}

	isBoss := actor != nil && actor.Role == component.RoleBoss
	if err := ecs.Add(w, e, component.DyingComponent.Kind(), &component.Dying{Remaining: d.fx.DeathWindow}); err != nil {
		log.Printf("[damage] mark %s dying: %v", e, err)
	}

	if isBoss {
		if rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind()); ok && rt.VolleyTimer != 0 {
			w.Timers().Cancel(ecs.TimerHandle(rt.VolleyTimer))
			rt.VolleyTimer = 0
		}
	}

	death := event.Death{
		Entity: uint64(e),
		Pos:    hit.Pos,
		Boss:   isBoss,
		Sparks: d.fx.DeathSparks,
		Window: d.fx.DeathWindow,
	}
	d.out.Emit(event.EnemyDied, death)

	if isBoss && d.fx.ShakeSeconds > 0 {
		d.out.Emit(event.CameraShake, event.Shake{Seconds: d.fx.ShakeSeconds, Intensity: d.fx.ShakeIntensity})
	}

	d.out.Emit(event.EnemyDefeated, event.Defeat{Entity: uint64(e), Boss: isBoss})
	return true
}

// DamagePlayer subtracts amount from a party member, keeping health at or
// above zero. Returns false when nothing was applied.
func (d *Damager) DamagePlayer(w *ecs.World, e ecs.Entity, amount int) bool {
	if w == nil || !w.IsAlive(e) || amount <= 0 {
		return false
	}

	health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	applyDamage(health, amount)

	hit := event.Hit{
		Entity: uint64(e),
		Amount: amount,
		Player: true,
		Tint:   d.fx.PlayerTint,
	}
	if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		hit.Pos = transform.Pos
	}
	d.out.Emit(event.ActorHit, hit)
	return true
}

func applyDamage(h *component.Health, amount int) {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}
