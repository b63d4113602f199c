package engine

import "hueareyou/internal/models"

// EventKind identifies a phase transition announced to subscribers
type EventKind int

const (
	EventStarted EventKind = iota
	EventCompleted
	EventRestarted
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event is a phase transition. Choices is set only for EventCompleted.
type Event struct {
	Kind    EventKind
	Choices models.Choices
}

type subscriber struct {
	id int
	fn func(Event)
}

// Dispatcher delivers events synchronously, in subscription order, to its subscribers.
// It is owned by the composition root that wires the host to the engine.
type Dispatcher struct {
	subs   []subscriber
	nextID int
}

// NewDispatcher creates a dispatcher with no subscribers
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers fn and returns a function that removes it
func (d *Dispatcher) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := d.nextID
	d.nextID++
	d.subs = append(d.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

func (d *Dispatcher) publish(ev Event) {
	subs := make([]subscriber, len(d.subs))
	copy(subs, d.subs)
	for _, s := range subs {
		s.fn(ev)
	}
}
