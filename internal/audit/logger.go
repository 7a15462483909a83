package audit

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Logger is the Sink that stores events in audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	row := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     datatypes.JSON("{}"),
	}

	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("audit %s metadata: %w", ev.Action, err)
		}
		row.Metadata = datatypes.JSON(b)
	}

	if err := l.db.Create(&row).Error; err != nil {
		return fmt.Errorf("audit %s: %w", ev.Action, err)
	}
	return nil
}
