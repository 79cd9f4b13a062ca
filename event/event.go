package event

// Type names an event kind.
type Type string

// Event is one notification pushed from the combat core to its observers.
// Data holds the typed payload declared in types.go.
type Event struct {
	Type Type
	Data any
}

// Listener receives events.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher fans events out to subscribers synchronously, in subscription
// order. A listener subscribed with SubscribeAll sees every type.
type Dispatcher struct {
	listeners map[Type][]Listener
	all       []Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Type][]Listener)}
}

// Subscribe registers l for one event type.
func (d *Dispatcher) Subscribe(t Type, l Listener) {
	if d == nil || l == nil {
		return
	}
	d.listeners[t] = append(d.listeners[t], l)
}

// SubscribeAll registers l for every event type.
func (d *Dispatcher) SubscribeAll(l Listener) {
	if d == nil || l == nil {
		return
	}
	d.all = append(d.all, l)
}

// Dispatch sends e to the listeners of its type, then to catch-all listeners.
func (d *Dispatcher) Dispatch(e Event) {
	if d == nil {
		return
	}
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
	for _, l := range d.all {
		l.OnEvent(e)
	}
}

// Emit wraps payload in an Event of type t and dispatches it.
func (d *Dispatcher) Emit(t Type, payload any) {
	d.Dispatch(Event{Type: t, Data: payload})
}
