package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// writeSchedulingError maps scheduler outcomes to HTTP. Anything it does not
// recognize is an infrastructure failure and is logged.
func writeSchedulingError(c *gin.Context, logger *slog.Logger, err error) {
	if ce, ok := domain.AsConflict(err); ok {
		details := gin.H{}
		if ce.AppointmentID != 0 {
			details["conflicting_appointment_id"] = ce.AppointmentID
		} else {
			logger.Warn("conflict without a colliding appointment", "path", c.FullPath())
		}
		httperr.WriteDetails(c, http.StatusConflict, "time_conflict", "Conflito de horário.", details)
		return
	}

	if re, ok := domain.AsResolver(err); ok {
		switch re.Code {
		case domain.ResolverClosed:
			c.JSON(http.StatusOK, gin.H{"status": "closed", "slots": []domain.TimeSlot{}})
		default:
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		}
		return
	}

	if ve, ok := domain.AsValidation(err); ok {
		if ve.Code == "unknown_barber" {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		httperr.WriteDetails(c, http.StatusBadRequest, ve.Code, "Dados inválidos.", gin.H{"field": ve.Field})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	if code, ok := httperr.CodeOf(err); ok {
		if m, known := businessStatus[code]; known {
			httperr.Write(c, m.status, code, m.message)
			return
		}
	}

	logger.Error("scheduling request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	httperr.Internal(c, "internal_error", "Erro interno.")
}

type businessMapping struct {
	status  int
	message string
}

var businessStatus = map[string]businessMapping{
	"appointment_not_found":    {http.StatusNotFound, "Agendamento não encontrado."},
	"already_terminal":         {http.StatusUnprocessableEntity, "Agendamento já finalizado."},
	"past_cancellation_window": {http.StatusUnprocessableEntity, "Prazo de cancelamento encerrado."},
	"invalid_state":            {http.StatusUnprocessableEntity, "Transição de status inválida."},
	"status_changed":           {http.StatusConflict, "Agendamento alterado por outra operação."},
	"slots_available":          {http.StatusConflict, "Ainda há horários disponíveis."},
}
