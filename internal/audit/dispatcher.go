package audit

import (
	"log/slog"
	"sync"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Sink persists audit events.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(sink Sink, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.logger.Error("audit write failed", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch never blocks the request path: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains queued events and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
