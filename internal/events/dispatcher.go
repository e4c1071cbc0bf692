package events

import "log"

type Event struct {
	PropertyID uint
	ActorID    *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Sink receives dispatched events. The gorm-backed Recorder is the production
// sink; tests substitute their own.
type Sink interface {
	Record(
		propertyID uint,
		actorID *uint,
		action string,
		entity string,
		entityID *uint,
		metadata any,
	) error
}

// Dispatcher decouples request handling from event persistence: genuine
// transitions enqueue exactly one event, a worker drains the queue.
type Dispatcher struct {
	sink  Sink
	queue chan Event
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Record(
			ev.PropertyID,
			ev.ActorID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("event error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// Queue full: drop rather than block the request path.
		log.Println("event queue full, dropping event")
	}
}
