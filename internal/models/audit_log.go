package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is append-only. Metadata holds the event's JSON details.
type AuditLog struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index:idx_audit_shop_created,priority:1" json:"barbershop_id"`
	UserID       *uint `json:"user_id"`

	Action   string         `gorm:"size:50;not null;index" json:"action"`
	Entity   string         `gorm:"size:50;index:idx_audit_entity,priority:1" json:"entity"`
	EntityID *uint          `gorm:"index:idx_audit_entity,priority:2" json:"entity_id"`
	Metadata datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `gorm:"index:idx_audit_shop_created,priority:2" json:"created_at"`
}
