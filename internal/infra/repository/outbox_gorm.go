package repository

import (
	"context"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/notification"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const maxErrorLen = 255

// OutboxGormRepository keeps notification intents in notification_outbox.
type OutboxGormRepository struct {
	db *gorm.DB
}

func NewOutboxGormRepository(db *gorm.DB) *OutboxGormRepository {
	return &OutboxGormRepository{db: db}
}

func (r *OutboxGormRepository) Enqueue(ctx context.Context, intents []notification.Intent) error {
	if len(intents) == 0 {
		return nil
	}

	rows := make([]models.NotificationOutbox, 0, len(intents))
	for _, in := range intents {
		rows = append(rows, models.NotificationOutbox{
			IntentID:     in.ID,
			BarbershopID: in.BarbershopID,
			ClientID:     in.Recipient.ClientID,
			Name:         in.Recipient.Name,
			Phone:        in.Recipient.Phone,
			Email:        in.Recipient.Email,
			Template:     string(in.Template),
			Payload:      datatypes.NewJSONType(in.Payload),
			Status:       models.OutboxPending,
			CreatedAt:    in.CreatedAt.UTC(),
		})
	}

	return conn(ctx, r.db).Create(&rows).Error
}

// Pending returns the oldest unsent intents first.
func (r *OutboxGormRepository) Pending(ctx context.Context, limit int) ([]notification.Intent, error) {
	var rows []models.NotificationOutbox
	if err := conn(ctx, r.db).
		Where("status = ?", models.OutboxPending).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]notification.Intent, 0, len(rows))
	for _, row := range rows {
		payload := row.Payload.Data()
		if payload == nil {
			payload = map[string]string{}
		}
		out = append(out, notification.Intent{
			ID:           row.IntentID,
			BarbershopID: row.BarbershopID,
			Recipient: notification.Recipient{
				ClientID: row.ClientID,
				Name:     row.Name,
				Phone:    row.Phone,
				Email:    row.Email,
			},
			Template:  notification.Template(row.Template),
			Payload:   payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *OutboxGormRepository) MarkSent(ctx context.Context, intentID string, at time.Time) error {
	return conn(ctx, r.db).
		Model(&models.NotificationOutbox{}).
		Where("intent_id = ?", intentID).
		Updates(map[string]any{
			"status":   models.OutboxSent,
			"sent_at":  at.UTC(),
			"attempts": gorm.Expr("attempts + 1"),
		}).Error
}

func (r *OutboxGormRepository) MarkFailed(ctx context.Context, intentID string, cause error) error {
	msg := truncate(cause.Error(), maxErrorLen)
	return conn(ctx, r.db).
		Model(&models.NotificationOutbox{}).
		Where("intent_id = ?", intentID).
		Updates(map[string]any{
			"last_error": msg,
			"attempts":   gorm.Expr("attempts + 1"),
		}).Error
}

var _ notification.Outbox = (*OutboxGormRepository)(nil)

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
