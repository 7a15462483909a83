package audit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestLogger_StoresMetadataAsJSON(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:audit_logger?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	id := uint(7)
	l := New(db)
	require.NoError(t, l.Log(Event{
		BarbershopID: 1,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &id,
		Metadata:     map[string]any{"previous_status": "confirmado", "waitlist_matched": 2},
	}))
	require.NoError(t, l.Log(Event{BarbershopID: 1, Action: "appointment_created"}))

	var rows []models.AuditLog
	require.NoError(t, db.Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(rows[0].Metadata, &meta))
	assert.Equal(t, "confirmado", meta["previous_status"])
	assert.Equal(t, float64(2), meta["waitlist_matched"])
	assert.JSONEq(t, "{}", string(rows[1].Metadata))

	_, err = json.Marshal(rows[0])
	assert.NoError(t, err)
}
