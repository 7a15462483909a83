package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/waitlist"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WaitlistGormRepository struct {
	db *gorm.DB
}

func NewWaitlistGormRepository(db *gorm.DB) *WaitlistGormRepository {
	return &WaitlistGormRepository{db: db}
}

func (r *WaitlistGormRepository) ListForDay(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
) ([]models.WaitlistEntry, error) {

	var entries []models.WaitlistEntry
	if err := conn(ctx, r.db).
		Preload("Client").
		Where("barbershop_id = ? AND barber_id = ? AND date = ?", barbershopID, barberID, date).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindEntry returns nil, nil when the client is not waiting for that day.
func (r *WaitlistGormRepository) FindEntry(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
	barberID uint,
	date string,
) (*models.WaitlistEntry, error) {

	var entry models.WaitlistEntry
	err := conn(ctx, r.db).
		Where(
			"barbershop_id = ? AND client_id = ? AND barber_id = ? AND date = ?",
			barbershopID, clientID, barberID, date,
		).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WaitlistGormRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	res := conn(ctx, r.db).
		Omit("Client").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "barbershop_id"}, {Name: "client_id"}, {Name: "barber_id"}, {Name: "date"},
			},
			DoNothing: true,
		}).
		Create(entry)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return waitlist.ErrEntryExists
	}
	return nil
}

func (r *WaitlistGormRepository) MarkNotified(ctx context.Context, ids []uint, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return conn(ctx, r.db).
		Model(&models.WaitlistEntry{}).
		Where("id IN ?", ids).
		Update("notified_at", at.UTC()).Error
}

var _ waitlist.Repository = (*WaitlistGormRepository)(nil)
