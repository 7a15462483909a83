package notify

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barber-booking/internal/domain/notification"
)

// LogNotifier is used when no queue is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, intent notification.Intent) error {
	n.logger.Info("notification intent",
		"intent_id", intent.ID,
		"template", intent.Template,
		"barbershop_id", intent.BarbershopID,
		"client_id", intent.Recipient.ClientID,
	)
	return nil
}

var _ notification.Notifier = (*LogNotifier)(nil)
