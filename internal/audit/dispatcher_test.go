package audit

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *recordingSink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	d.Dispatch(Event{BarbershopID: 1, Action: "appointment_created"})
	d.Dispatch(Event{BarbershopID: 1, Action: "appointment_cancelled"})
	d.Close()

	assert.Len(t, sink.events, 2)
	assert.Equal(t, "appointment_created", sink.events[0].Action)
	assert.Equal(t, "appointment_cancelled", sink.events[1].Action)
}

func TestDispatcher_SinkErrorsAreSwallowed(t *testing.T) {
	sink := &recordingSink{fail: true}
	d := NewDispatcher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "appointment_created"})
		d.Close()
		d.Close()
	})

	var nilDispatcher *Dispatcher
	assert.NotPanics(t, func() { nilDispatcher.Dispatch(Event{}) })
}
