package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucWaitlist "github.com/BruksfildServices01/barber-booking/internal/usecase/waitlist"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type ShopFinder interface {
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
}

type PublicHandler struct {
	shops        ShopFinder
	availability *appointment.GetAvailability
	book         *appointment.BookAppointment
	cancel       *appointment.CancelAppointment
	join         *ucWaitlist.Join
	logger       *slog.Logger
}

func NewPublicHandler(
	shops ShopFinder,
	availability *appointment.GetAvailability,
	book *appointment.BookAppointment,
	cancel *appointment.CancelAppointment,
	join *ucWaitlist.Join,
	logger *slog.Logger,
) *PublicHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublicHandler{
		shops:        shops,
		availability: availability,
		book:         book,
		cancel:       cancel,
		join:         join,
		logger:       logger,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	SedeID      uint   `json:"sede_id"`

	// start_time (RFC 3339) or date + time in the barbershop's zone.
	StartTime *time.Time `json:"start_time"`
	Date      string     `json:"date"` // YYYY-MM-DD
	Time      string     `json:"time"` // HH:mm

	Notes string `json:"notes" binding:"max=255"`
}

type PublicCancelRequest struct {
	ClientPhone string `json:"client_phone" binding:"required"`
}

type PublicWaitlistRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
}

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.shops.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return nil, false
	}
	return shop, true
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	barberID, okBarber := parseID(c.Query("barber_id"))
	serviceID, okService := parseID(c.Query("service_id"))

	if dateStr == "" || !okBarber || !okService {
		httperr.BadRequest(c, "missing_params", "Data, barbeiro e serviço obrigatórios.")
		return
	}

	shop, ok := h.shop(c)
	if !ok {
		return
	}

	writeAvailability(c, h.logger, h.availability, domain.AvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		ServiceID:    serviceID,
		Date:         dateStr,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if req.StartTime == nil && (req.Date == "" || req.Time == "") {
		httperr.BadRequest(c, "missing_start_time", "Data e hora obrigatórias.")
		return
	}

	shop, ok := h.shop(c)
	if !ok {
		return
	}

	in := appointment.BookAppointmentInput{
		BarbershopID: shop.ID,
		SedeID:       req.SedeID,
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		NewClient: &appointment.ClientInfo{
			Name:  req.ClientName,
			Phone: validators.NormalizePhone(req.ClientPhone),
			Email: req.ClientEmail,
		},
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	}
	if req.StartTime != nil {
		in.StartTime = *req.StartTime
	}

	ap, err := h.book.Execute(c.Request.Context(), in)
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

////////////////////////////////////////////////////////
// CANCEL
////////////////////////////////////////////////////////

func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Agendamento inválido.")
		return
	}

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	phone := validators.NormalizePhone(req.ClientPhone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	shop, ok := h.shop(c)
	if !ok {
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), appointment.CancelAppointmentInput{
		BarbershopID:  shop.ID,
		AppointmentID: id,
		ClientPhone:   phone,
	})
	if err != nil {
		writeSchedulingError(c, h.logger, err)
		return
	}

	httpresp.OK(c, gin.H{"message": res.Message})
}

////////////////////////////////////////////////////////
// WAITLIST
////////////////////////////////////////////////////////

func (h *PublicHandler) JoinWaitlist(c *gin.Context) {
	var req PublicWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	shop, ok := h.shop(c)
	if !ok {
		return
	}

	res, err := h.join.Execute(c.Request.Context(), ucWaitlist.JoinInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		ClientName:   req.ClientName,
		ClientPhone:  validators.NormalizePhone(req.ClientPhone),
		ClientEmail:  req.ClientEmail,
	})
	if err != nil {
		if re, ok := domain.AsResolver(err); ok && re.Code == domain.ResolverClosed {
			httperr.BadRequest(c, "closed", "Barbeiro não atende nesta data.")
			return
		}
		writeSchedulingError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, res.Entry)
}
