package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursStore interface {
	ListWeek(ctx context.Context, barberID uint) ([]models.WorkingHours, error)
	ReplaceWeek(ctx context.Context, barberID uint, rules []models.WorkingHours) error
	SaveOverride(ctx context.Context, ov *models.WorkingHoursOverride) error
}

type WorkingHoursHandler struct {
	store  WorkingHoursStore
	logger *slog.Logger
}

func NewWorkingHoursHandler(store WorkingHoursStore, logger *slog.Logger) *WorkingHoursHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkingHoursHandler{store: store, logger: logger}
}

type BreakConfig struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WorkingDayConfig struct {
	Weekday   *int          `json:"weekday" binding:"required,min=0,max=6"`
	Active    bool          `json:"active"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Breaks    []BreakConfig `json:"breaks" binding:"dive"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

type OverrideRequest struct {
	Active    bool          `json:"active"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Breaks    []BreakConfig `json:"breaks" binding:"dive"`
	Reason    string        `json:"reason" binding:"max=100"`
}

func toBreaks(in []BreakConfig) []models.WorkingBreak {
	out := make([]models.WorkingBreak, 0, len(in))
	for _, b := range in {
		out = append(out, models.WorkingBreak{StartTime: b.StartTime, EndTime: b.EndTime})
	}
	return out
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, _ := staffIDs(c)

	hours, err := h.store.ListWeek(c.Request.Context(), barberID)
	if err != nil {
		h.logger.Error("list working hours failed", "barber_id", barberID, "error", err)
		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao carregar horários.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the whole week. Every active day is validated before
// anything is written.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, _ := staffIDs(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := map[int]bool{}
	rules := make([]models.WorkingHours, 0, len(req.Days))

	for _, d := range req.Days {
		if seen[*d.Weekday] {
			httperr.WriteDetails(c, http.StatusBadRequest, "duplicate_weekday", "Dia repetido.", gin.H{"weekday": *d.Weekday})
			return
		}
		seen[*d.Weekday] = true

		breaks := toBreaks(d.Breaks)
		if err := domain.ValidateDayConfig(d.Active, d.StartTime, d.EndTime, breaks); err != nil {
			writeDayConfigError(c, err, gin.H{"weekday": *d.Weekday})
			return
		}

		rules = append(rules, models.WorkingHours{
			Weekday:   *d.Weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Breaks:    breaks,
		})
	}

	if err := h.store.ReplaceWeek(c.Request.Context(), barberID, rules); err != nil {
		h.logger.Error("replace working hours failed", "barber_id", barberID, "error", err)
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PutOverride sets special hours (or a day off) for one date.
func (h *WorkingHoursHandler) PutOverride(c *gin.Context) {
	barberID, _ := staffIDs(c)

	date := c.Param("date")
	if _, err := parseCalendarDate(date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	breaks := toBreaks(req.Breaks)
	if err := domain.ValidateDayConfig(req.Active, req.StartTime, req.EndTime, breaks); err != nil {
		writeDayConfigError(c, err, gin.H{"date": date})
		return
	}

	ov := &models.WorkingHoursOverride{
		BarberID:  barberID,
		Date:      date,
		Active:    req.Active,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Breaks:    breaks,
		Reason:    req.Reason,
	}

	if err := h.store.SaveOverride(c.Request.Context(), ov); err != nil {
		h.logger.Error("save override failed", "barber_id", barberID, "date", date, "error", err)
		httperr.Internal(c, "failed_to_save_override", "Erro ao salvar exceção.")
		return
	}

	c.JSON(http.StatusOK, ov)
}

func writeDayConfigError(c *gin.Context, err error, where gin.H) {
	code := "invalid_working_hours"
	if ve, ok := domain.AsValidation(err); ok {
		code = ve.Code
	}
	httperr.WriteDetails(c, http.StatusBadRequest, code, "Horário inválido.", where)
}
