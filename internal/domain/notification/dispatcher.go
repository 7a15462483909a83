package notification

import (
	"context"
	"log/slog"
	"time"
)

const defaultBatchSize = 100

// Dispatcher publishes pending outbox intents. It runs after each committing
// request; intents that fail stay pending and go out on a later flush.
type Dispatcher struct {
	outbox   Outbox
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	batch    int
}

func NewDispatcher(outbox Outbox, notifier Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		outbox:   outbox,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		batch:    defaultBatchSize,
	}
}

// Flush returns how many intents were accepted by the notifier. Notifier
// failures are recorded on the intent and do not abort the batch.
func (d *Dispatcher) Flush(ctx context.Context) (int, error) {
	pending, err := d.outbox.Pending(ctx, d.batch)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, in := range pending {
		if err := d.notifier.Notify(ctx, in); err != nil {
			d.logger.Warn("notification delivery failed",
				"intent_id", in.ID,
				"template", in.Template,
				"error", err,
			)
			if mErr := d.outbox.MarkFailed(ctx, in.ID, err); mErr != nil {
				return sent, mErr
			}
			continue
		}

		if err := d.outbox.MarkSent(ctx, in.ID, d.now()); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}
