package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := db.Exec(`
        UPDATE barbershops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.DefaultTimezone).Error; err != nil {
		return nil, fmt.Errorf("backfill timezone: %w", err)
	}

	return db, nil
}

// Migrate creates the schema. On PostgreSQL it also installs the exclusion
// constraint that forbids two active appointments of one barber from
// overlapping.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.Sede{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.WorkingHoursOverride{},
		&models.WorkingBreak{},
		&models.Client{},
		&models.Appointment{},
		&models.WaitlistEntry{},
		&models.NotificationOutbox{},
		&models.FinancialEntry{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	for _, stmt := range exclusionDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install booking constraint: %w", err)
		}
	}
	return nil
}

var exclusionDDL = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
    ) THEN
        ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                barber_id WITH =,
                tstzrange(start_time, end_time, '[)') WITH &&
            )
            WHERE (status <> 'cancelado');
    END IF;
END
$$`,
}
