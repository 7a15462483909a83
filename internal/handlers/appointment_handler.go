package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book         *appointment.BookAppointment
	complete     *appointment.CompleteAppointment
	cancel       *appointment.CancelAppointment
	confirm      *appointment.ConfirmAppointment
	listByDate   *appointment.ListAppointmentsByDate
	listByMonth  *appointment.ListAppointmentsByMonth
	availability *appointment.GetAvailability
	logger       *slog.Logger
}

func NewAppointmentHandler(
	book *appointment.BookAppointment,
	complete *appointment.CompleteAppointment,
	cancel *appointment.CancelAppointment,
	confirm *appointment.ConfirmAppointment,
	listByDate *appointment.ListAppointmentsByDate,
	listByMonth *appointment.ListAppointmentsByMonth,
	availability *appointment.GetAvailability,
	logger *slog.Logger,
) *AppointmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AppointmentHandler{
		book:         book,
		complete:     complete,
		cancel:       cancel,
		confirm:      confirm,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		availability: availability,
		logger:       logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateAppointmentRequest books on the authenticated barber's agenda.
// Either client_id or the walk-in contact fields must be set.
type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	SedeID      uint   `json:"sede_id"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes" binding:"max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := appointment.BookAppointmentInput{
		BarbershopID: barbershopID,
		SedeID:       req.SedeID,
		BarberID:     barberID,
		ServiceID:    req.ServiceID,
		ClientID:     req.ClientID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		ActorID:      &barberID,
	}
	if req.ClientID == 0 {
		in.NewClient = &appointment.ClientInfo{
			Name:  req.ClientName,
			Phone: validators.NormalizePhone(req.ClientPhone),
			Email: req.ClientEmail,
		}
	}

	ap, err := h.book.Execute(c.Request.Context(), in)
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseCalendarDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), barberID, barbershopID, date)
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), barberID, barbershopID, year, month)
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return
	}

	httpresp.OK(c, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

// Availability shows the authenticated barber's own free slots.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	serviceID, ok := parseID(c.Query("service_id"))
	if !ok || c.Query("date") == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	writeAvailability(c, h.logger, h.availability, domain.AvailabilityInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ServiceID:    serviceID,
		Date:         c.Query("date"),
	})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	barberID, barbershopID := staffIDs(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), appointment.CancelAppointmentInput{
		BarbershopID:  barbershopID,
		AppointmentID: id,
		BarberID:      barberID,
		ActorID:       &barberID,
	})
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return
	}

	httpresp.OK(c, cancelResponse(res))
}

// ======================================================
// SHARED
// ======================================================

func writeAvailability(
	c *gin.Context,
	logger *slog.Logger,
	uc *appointment.GetAvailability,
	in domain.AvailabilityInput,
) {
	avail, err := uc.Execute(c.Request.Context(), in)
	if err != nil {
		if re, ok := domain.AsResolver(err); ok && re.Code == domain.ResolverClosed {
			httpresp.OK(c, gin.H{
				"date":   in.Date,
				"status": "closed",
				"slots":  []domain.TimeSlot{},
			})
			return
		}
		writeSchedulingError(c, logger, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":   avail.Date,
		"status": "open",
		"slots":  avail.Slots,
	})
}

func cancelResponse(res *appointment.CancelResult) gin.H {
	return gin.H{
		"message":           res.Message,
		"appointment":       res.Appointment,
		"waitlist_notified": len(res.Waitlist),
	}
}
