package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// newTestDB opens a private in-memory database. A single connection makes
// concurrent transactions queue the way row locks would on PostgreSQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

type fixture struct {
	shop    models.Barbershop
	sede    models.Sede
	barber  models.User
	client  models.Client
	service models.Service
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{
		shop: models.Barbershop{Name: "Navalha", Slug: "navalha", Timezone: "America/Sao_Paulo"},
	}
	require.NoError(t, db.Create(&f.shop).Error)

	f.sede = models.Sede{BarbershopID: f.shop.ID, Name: "Centro", Active: true}
	require.NoError(t, db.Create(&f.sede).Error)

	f.barber = models.User{
		BarbershopID: f.shop.ID,
		Name:         "Rafael",
		Email:        "rafael@navalha.test",
		Role:         models.RoleBarber,
		Active:       true,
	}
	require.NoError(t, db.Create(&f.barber).Error)

	f.client = models.Client{BarbershopID: f.shop.ID, Name: "Ana", Phone: "11988887777"}
	require.NoError(t, db.Create(&f.client).Error)

	f.service = models.Service{BarbershopID: f.shop.ID, Name: "Corte", DurationMin: 30, Price: 50, Active: true}
	require.NoError(t, db.Create(&f.service).Error)

	return f
}

var brt = time.FixedZone("BRT", -3*3600)

func slot(hour, min int) time.Time {
	return time.Date(2026, 10, 14, hour, min, 0, 0, brt)
}

func (f fixture) draft(start time.Time, minutes int) *models.Appointment {
	return &models.Appointment{
		BarbershopID: f.shop.ID,
		SedeID:       f.sede.ID,
		BarberID:     f.barber.ID,
		ClientID:     f.client.ID,
		ServiceID:    f.service.ID,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(minutes) * time.Minute),
		Status:       "confirmado",
	}
}
