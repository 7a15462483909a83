package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/finance"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type FinanceGormRepository struct {
	db *gorm.DB
}

func NewFinanceGormRepository(db *gorm.DB) *FinanceGormRepository {
	return &FinanceGormRepository{db: db}
}

// RecordCompletion is idempotent per appointment.
func (r *FinanceGormRepository) RecordCompletion(ctx context.Context, entry *models.FinancialEntry) error {
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}},
			DoNothing: true,
		}).
		Create(entry).Error
}

var _ finance.Recorder = (*FinanceGormRepository)(nil)
