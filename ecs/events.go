package ecs

// Event is a fire-and-forget domain broadcast ("set_bg_sound",
// "ecs_create", "level_changed").
type Event struct {
	Type  string
	Value any
}

// Dispatcher fans events out to subscribers synchronously, in
// subscription order. Publishing to a type nobody listens to is fine.
type Dispatcher struct {
	handlers map[string][]func(Event)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]func(Event))}
}

// Subscribe registers fn for every published event of the given type.
func (d *Dispatcher) Subscribe(eventType string, fn func(Event)) {
	if fn == nil {
		return
	}
	d.handlers[eventType] = append(d.handlers[eventType], fn)
}

// Publish delivers the event to all subscribers before returning.
func (d *Dispatcher) Publish(evt Event) {
	for _, fn := range d.handlers[evt.Type] {
		fn(evt)
	}
}
