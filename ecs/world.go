package ecs

import (
	"time"

	"github.com/milk9111/crimsonsky/ecs/component"
)

// World owns entities, components, timers and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	timers    Timers
	delta     float64
	elapsed   time.Duration
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    map[component.ComponentID]*SparseSet{},
		scheduler: NewScheduler(),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It reports
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// AddComponent stores v for e under the component id.
func (w *World) AddComponent(e Entity, id component.ComponentID, v any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	w.store(id).Set(e, v)
	return nil
}

// GetComponent returns the raw component value for e.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s, ok := w.stores[id]
	if !ok || !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

// HasComponent reports whether e has a component with the given id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	s, ok := w.stores[id]
	return ok && s.Has(e)
}

// RemoveComponent deletes the component with the given id from e.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	s, ok := w.stores[id]
	if !ok {
		return false
	}
	return s.Remove(e)
}

func (w *World) store(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update advances timers by dt and then runs every system once.
func (w *World) Update(dt time.Duration) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt.Seconds()
	w.elapsed += dt
	w.timers.Advance(dt)
	w.scheduler.Update(w)
}

// Delta returns the duration of the current frame in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// Elapsed returns the total simulated time.
func (w *World) Elapsed() time.Duration {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// Timers returns the world's scheduled callbacks.
func (w *World) Timers() *Timers {
	if w == nil {
		return nil
	}
	return &w.timers
}
