package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AppointmentGormRepository is the booking ledger. Instants are stored in
// UTC; callers convert to the barbershop's zone for display.
type AppointmentGormRepository struct {
	db *gorm.DB
	tx *Transactor
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, tx: NewTransactor(db)}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := conn(ctx, r.db).First(&shop, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := conn(ctx, r.db).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetSede(
	ctx context.Context,
	barbershopID uint,
	sedeID uint,
) (*models.Sede, error) {

	var sede models.Sede
	if err := conn(ctx, r.db).
		Where("id = ? AND barbershop_id = ?", sedeID, barbershopID).
		First(&sede).Error; err != nil {
		return nil, notFound(err)
	}
	return &sede, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {

	var barber models.User
	if err := conn(ctx, r.db).
		Where("id = ? AND barbershop_id = ? AND active = ?", barberID, barbershopID, true).
		First(&barber).Error; err != nil {
		return nil, notFound(err)
	}
	return &barber, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := conn(ctx, r.db).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := conn(ctx, r.db).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

// FindClientByPhone returns ErrNotFound when the phone is new to the
// barbershop. It never writes.
func (r *AppointmentGormRepository) FindClientByPhone(
	ctx context.Context,
	barbershopID uint,
	phone string,
) (*models.Client, error) {

	var client models.Client
	if err := conn(ctx, r.db).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	existing, err := r.FindClientByPhone(ctx, barbershopID, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	client := models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	res := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barbershop_id"}, {Name: "phone"}},
			DoNothing: true,
		}).
		Create(&client)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// A concurrent booking registered the same phone first.
		return r.FindClientByPhone(ctx, barbershopID, phone)
	}

	return &client, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := conn(ctx, r.db).
		Preload("Breaks").
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *AppointmentGormRepository) GetWorkingHoursOverride(
	ctx context.Context,
	barberID uint,
	date string,
) (*models.WorkingHoursOverride, error) {

	var ov models.WorkingHoursOverride
	err := conn(ctx, r.db).
		Preload("Breaks").
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&ov).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

func (r *AppointmentGormRepository) ListActiveAppointments(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := conn(ctx, r.db).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, domain.ActiveStatusStrings(), end.UTC(), start.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := conn(ctx, r.db).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start.UTC(),
			end.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

// Reserve inserts ap unless the barber already has an active appointment
// overlapping it. The barber row is locked for the duration of the check so
// concurrent reservations for the same barber serialize; the exclusion
// constraint installed by db.Migrate catches anything that slips past.
func (r *AppointmentGormRepository) Reserve(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		db := conn(ctx, r.db)

		if db.Dialector.Name() == "postgres" {
			var barber models.User
			if err := db.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				First(&barber, ap.BarberID).Error; err != nil {
				return notFound(err)
			}
		}

		clash, err := r.firstOverlap(db, ap)
		if err != nil {
			return err
		}
		if clash != nil {
			return domain.ConflictError{AppointmentID: clash.ID}
		}

		return db.Omit(clause.Associations).Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		// The failed transaction is gone; look the winner up outside it.
		clash, lookupErr := r.firstOverlap(r.db.WithContext(ctx), ap)
		if lookupErr != nil {
			return lookupErr
		}
		if clash == nil {
			// The winner was cancelled in between; the id is unknown.
			return domain.ConflictError{}
		}
		return domain.ConflictError{AppointmentID: clash.ID}
	}

	return err
}

func (r *AppointmentGormRepository) firstOverlap(
	db *gorm.DB,
	ap *models.Appointment,
) (*models.Appointment, error) {

	var found []models.Appointment
	if err := db.
		Select("id", "start_time").
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			ap.BarberID, domain.ActiveStatusStrings(), ap.EndTime, ap.StartTime,
		).
		Order("start_time ASC").
		Limit(1).
		Find(&found).Error; err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := conn(ctx, r.db).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}

	return &ap, nil
}

// UpdateStatus is a compare-and-set on the status column: two callers racing
// on the same appointment cannot both move it out of from.
func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := conn(ctx, r.db).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": utcPtr(ap.CancelledAt),
			"completed_at": utcPtr(ap.CompletedAt),
			"confirmed_at": utcPtr(ap.ConfirmedAt),
			"updated_at":   time.Now().UTC(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStatusChanged
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
