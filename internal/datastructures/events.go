package datastructures

// Event is the kind of structural mutation a list reports.
type Event int

const (
	// EventIncrease fires once for every node linked into the chain.
	EventIncrease Event = iota
	// EventDecrease fires once for every node unlinked from the chain.
	EventDecrease
	// EventReset fires when the whole chain is dropped.
	EventReset
)

func (e Event) String() string {
	switch e {
	case EventIncrease:
		return "INCREASE"
	case EventDecrease:
		return "DECREASE"
	case EventReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}

// EventListener maps an event kind to the handlers registered for it.
// It is not safe for concurrent use.
type EventListener[K comparable] struct {
	handlers map[K][]func()
}

// NewEventListener creates an empty listener.
func NewEventListener[K comparable]() *EventListener[K] {
	return &EventListener[K]{handlers: make(map[K][]func())}
}

// Add registers handler under kind. Handlers are not deduplicated.
func (e *EventListener[K]) Add(kind K, handler func()) {
	if handler == nil {
		return
	}
	if e.handlers == nil {
		e.handlers = make(map[K][]func())
	}
	e.handlers[kind] = append(e.handlers[kind], handler)
}

// Trigger runs every handler registered under kind, in registration order.
// Triggering a kind with no handlers does nothing.
func (e *EventListener[K]) Trigger(kind K) {
	for _, handler := range e.handlers[kind] {
		handler()
	}
}

// Len returns how many handlers are registered under kind.
func (e *EventListener[K]) Len(kind K) int {
	return len(e.handlers[kind])
}
