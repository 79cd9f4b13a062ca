package system

import (
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/event"
)

// HealthReportSystem pushes the party's health outward once per frame.
type HealthReportSystem struct {
	out Emitter
}

func NewHealthReportSystem(out Emitter) *HealthReportSystem {
	return &HealthReportSystem{out: emitterOrNop(out)}
}

func (s *HealthReportSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.out.Emit(event.HealthUpdated, PartyHealth(w))
}

// PartyHealth reads the current party health.
func PartyHealth(w *ecs.World) event.HealthUpdate {
	var report event.HealthUpdate

	if lead, ok := w.First(component.LeadTagComponent.Kind(), component.HealthComponent.Kind()); ok {
		h, _ := ecs.Get(w, lead, component.HealthComponent.Kind())
		report.Lead = h.Current
		report.Max = h.Max
	}

	if companion, ok := w.First(component.CompanionTagComponent.Kind(), component.HealthComponent.Kind()); ok {
		h, _ := ecs.Get(w, companion, component.HealthComponent.Kind())
		report.Companion = h.Current
		if h.Max > report.Max {
			report.Max = h.Max
		}
	}

	return report
}
