package appointment

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/notification"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var saoPaulo = timezone.Location("America/Sao_Paulo")

// 2026-10-14 is a Wednesday.
func at(hour, min int) time.Time {
	return time.Date(2026, 10, 14, hour, min, 0, 0, saoPaulo)
}

const testDate = "2026-10-14"

// memRepo is an in-memory booking ledger. Reserve holds the mutex across
// check and insert, which is the guarantee the real guard gives.
type memRepo struct {
	mu sync.Mutex

	shops     map[uint]*models.Barbershop
	sedes     map[uint]*models.Sede
	barbers   map[uint]*models.User
	services  map[uint]*models.Service
	clients   map[uint]*models.Client
	rules     map[uint]map[int]*models.WorkingHours
	overrides map[uint]map[string]*models.WorkingHoursOverride
	apps      map[uint]*models.Appointment

	nextID uint
}

func newMemRepo() *memRepo {
	r := &memRepo{
		shops:     map[uint]*models.Barbershop{},
		sedes:     map[uint]*models.Sede{},
		barbers:   map[uint]*models.User{},
		services:  map[uint]*models.Service{},
		clients:   map[uint]*models.Client{},
		rules:     map[uint]map[int]*models.WorkingHours{},
		overrides: map[uint]map[string]*models.WorkingHoursOverride{},
		apps:      map[uint]*models.Appointment{},
		nextID:    100,
	}

	r.shops[1] = &models.Barbershop{ID: 1, Slug: "navalha", Timezone: "America/Sao_Paulo"}
	r.sedes[5] = &models.Sede{ID: 5, BarbershopID: 1, Active: true}
	r.barbers[10] = &models.User{ID: 10, BarbershopID: 1, Active: true}
	r.services[20] = &models.Service{ID: 20, BarbershopID: 1, Name: "Corte", DurationMin: 30, Price: 50, Active: true}
	r.services[21] = &models.Service{ID: 21, BarbershopID: 1, Name: "Barba", DurationMin: 60, Price: 80, Active: true, RequiresPrepayment: true}
	r.clients[30] = &models.Client{ID: 30, BarbershopID: 1, Name: "Ana", Phone: "11988887777"}
	r.rules[10] = map[int]*models.WorkingHours{
		int(time.Wednesday): {
			BarberID: 10, Weekday: int(time.Wednesday), Active: true,
			StartTime: "09:00", EndTime: "18:00",
			Breaks: []models.WorkingBreak{{StartTime: "12:00", EndTime: "13:00"}},
		},
	}
	return r
}

func (r *memRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *memRepo) addAppointment(start time.Time, minutes int, status domain.Status) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap := &models.Appointment{
		ID: r.id(), BarbershopID: 1, BarberID: 10, ClientID: 30, ServiceID: 20,
		StartTime: start, EndTime: start.Add(time.Duration(minutes) * time.Minute),
		Status: string(status),
	}
	r.apps[ap.ID] = ap
	return ap
}

func (r *memRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if s, ok := r.shops[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	for _, s := range r.shops {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetSede(_ context.Context, shopID, id uint) (*models.Sede, error) {
	if s, ok := r.sedes[id]; ok && s.BarbershopID == shopID {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetBarber(_ context.Context, shopID, id uint) (*models.User, error) {
	if b, ok := r.barbers[id]; ok && b.BarbershopID == shopID && b.Active {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetService(_ context.Context, shopID, id uint) (*models.Service, error) {
	if s, ok := r.services[id]; ok && s.BarbershopID == shopID {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetClient(_ context.Context, shopID, id uint) (*models.Client, error) {
	if c, ok := r.clients[id]; ok && c.BarbershopID == shopID {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) FindClientByPhone(_ context.Context, shopID uint, phone string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.BarbershopID == shopID && c.Phone == phone {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetOrCreateClient(_ context.Context, shopID uint, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.BarbershopID == shopID && c.Phone == phone {
			return c, nil
		}
	}
	c := &models.Client{ID: r.id(), BarbershopID: shopID, Name: name, Phone: phone, Email: email}
	r.clients[c.ID] = c
	return c, nil
}

func (r *memRepo) GetWorkingHours(_ context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	return r.rules[barberID][weekday], nil
}

func (r *memRepo) GetWorkingHoursOverride(_ context.Context, barberID uint, date string) (*models.WorkingHoursOverride, error) {
	return r.overrides[barberID][date], nil
}

func (r *memRepo) ListActiveAppointments(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := domain.Interval{Start: start, End: end}
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.BarberID != barberID || !domain.Status(ap.Status).IsActive() {
			continue
		}
		if want.Overlaps(domain.Interval{Start: ap.StartTime, End: ap.EndTime}) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.BarberID != barberID || ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		cp := *ap
		cp.Client = *r.clients[ap.ClientID]
		cp.Service = *r.services[ap.ServiceID]
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memRepo) Reserve(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make([]models.Appointment, 0, len(r.apps))
	for _, a := range r.apps {
		existing = append(existing, *a)
	}
	if clash := domain.FindConflict(existing, ap.BarberID, ap.StartTime, ap.EndTime); clash != nil {
		return domain.ConflictError{AppointmentID: clash.ID}
	}

	ap.ID = r.id()
	cp := *ap
	r.apps[ap.ID] = &cp
	return nil
}

func (r *memRepo) GetAppointment(_ context.Context, shopID, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.apps[id]
	if !ok || ap.BarbershopID != shopID {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	cp.Client = *r.clients[ap.ClientID]
	cp.Service = *r.services[ap.ServiceID]
	return &cp, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.apps[ap.ID]
	if !ok || stored.Status != string(from) {
		return domain.ErrStatusChanged
	}
	stored.Status = ap.Status
	stored.CancelledAt = ap.CancelledAt
	stored.CompletedAt = ap.CompletedAt
	stored.ConfirmedAt = ap.ConfirmedAt
	return nil
}

// staleRepo serves a frozen copy of one appointment on the first read, as a
// concurrent writer would leave it for the loser of a race.
type staleRepo struct {
	*memRepo
	snapshot *models.Appointment
	served   bool
}

func (r *staleRepo) GetAppointment(ctx context.Context, shopID, id uint) (*models.Appointment, error) {
	if !r.served && r.snapshot != nil && r.snapshot.ID == id {
		r.served = true
		cp := *r.snapshot
		return &cp, nil
	}
	return r.memRepo.GetAppointment(ctx, shopID, id)
}

func (r *memRepo) status(id uint) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apps[id].Status
}

// passTx runs fn directly and counts calls.
type passTx struct{ calls atomic.Int32 }

func (t *passTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls.Add(1)
	return fn(ctx)
}

type memWaitlist struct {
	entries  []models.WaitlistEntry
	notified []uint
}

func (w *memWaitlist) ListForDay(_ context.Context, shopID, barberID uint, date string) ([]models.WaitlistEntry, error) {
	var out []models.WaitlistEntry
	for _, e := range w.entries {
		if e.BarbershopID == shopID && e.BarberID == barberID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (w *memWaitlist) FindEntry(_ context.Context, shopID, clientID, barberID uint, date string) (*models.WaitlistEntry, error) {
	for i, e := range w.entries {
		if e.BarbershopID == shopID && e.ClientID == clientID && e.BarberID == barberID && e.Date == date {
			return &w.entries[i], nil
		}
	}
	return nil, nil
}

func (w *memWaitlist) Create(_ context.Context, e *models.WaitlistEntry) error {
	e.ID = uint(len(w.entries) + 1)
	w.entries = append(w.entries, *e)
	return nil
}

func (w *memWaitlist) MarkNotified(_ context.Context, ids []uint, _ time.Time) error {
	w.notified = append(w.notified, ids...)
	return nil
}

type memOutbox struct {
	intents []notification.Intent
	sent    map[string]bool
}

func newMemOutbox() *memOutbox { return &memOutbox{sent: map[string]bool{}} }

func (o *memOutbox) Enqueue(_ context.Context, in []notification.Intent) error {
	o.intents = append(o.intents, in...)
	return nil
}

func (o *memOutbox) Pending(_ context.Context, limit int) ([]notification.Intent, error) {
	var out []notification.Intent
	for _, in := range o.intents {
		if !o.sent[in.ID] && len(out) < limit {
			out = append(out, in)
		}
	}
	return out, nil
}

func (o *memOutbox) MarkSent(_ context.Context, id string, _ time.Time) error {
	o.sent[id] = true
	return nil
}

func (o *memOutbox) MarkFailed(context.Context, string, error) error { return nil }

type recordingNotifier struct{ got []notification.Intent }

func (n *recordingNotifier) Notify(_ context.Context, in notification.Intent) error {
	n.got = append(n.got, in)
	return nil
}

type memFinance struct{ entries []*models.FinancialEntry }

func (f *memFinance) RecordCompletion(_ context.Context, e *models.FinancialEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func defaultPolicy() domain.Policy { return domain.NewPolicy(30, 0) }

func clockAt(t time.Time) timezone.Clock { return timezone.FixedClock(t) }
