package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursGormRepository struct {
	db *gorm.DB
	tx *Transactor
}

func NewWorkingHoursGormRepository(db *gorm.DB) *WorkingHoursGormRepository {
	return &WorkingHoursGormRepository{db: db, tx: NewTransactor(db)}
}

func (r *WorkingHoursGormRepository) ListWeek(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	var rules []models.WorkingHours
	if err := conn(ctx, r.db).
		Preload("Breaks", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// ReplaceWeek swaps the barber's whole weekly configuration in one
// transaction. Existing appointments are left untouched.
func (r *WorkingHoursGormRepository) ReplaceWeek(
	ctx context.Context,
	barberID uint,
	rules []models.WorkingHours,
) error {

	return r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		db := conn(ctx, r.db)

		var ids []uint
		if err := db.Model(&models.WorkingHours{}).
			Where("barber_id = ?", barberID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			if err := db.Where("working_hours_id IN ?", ids).
				Delete(&models.WorkingBreak{}).Error; err != nil {
				return err
			}
			if err := db.Where("id IN ?", ids).
				Delete(&models.WorkingHours{}).Error; err != nil {
				return err
			}
		}

		for i := range rules {
			rules[i].ID = 0
			rules[i].BarberID = barberID
			for j := range rules[i].Breaks {
				rules[i].Breaks[j].ID = 0
				rules[i].Breaks[j].OverrideID = nil
			}
			if err := db.Create(&rules[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveOverride upserts the override for (barber, date) with its breaks.
func (r *WorkingHoursGormRepository) SaveOverride(
	ctx context.Context,
	ov *models.WorkingHoursOverride,
) error {

	return r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		db := conn(ctx, r.db)

		var existing models.WorkingHoursOverride
		err := db.Where("barber_id = ? AND date = ?", ov.BarberID, ov.Date).
			Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}

		if existing.ID != 0 {
			if err := db.Where("override_id = ?", existing.ID).
				Delete(&models.WorkingBreak{}).Error; err != nil {
				return err
			}
			if err := db.Delete(&existing).Error; err != nil {
				return err
			}
		}

		ov.ID = 0
		for j := range ov.Breaks {
			ov.Breaks[j].ID = 0
			ov.Breaks[j].WorkingHoursID = nil
		}
		return db.Create(ov).Error
	})
}
