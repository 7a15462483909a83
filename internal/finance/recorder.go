package finance

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Recorder books revenue for rendered services. Only completion reaches it;
// cancellations happen before anything is booked, so there is nothing to
// reverse.
type Recorder interface {
	RecordCompletion(ctx context.Context, entry *models.FinancialEntry) error
}

func RevenueEntry(ap *models.Appointment, svc *models.Service) *models.FinancialEntry {
	return &models.FinancialEntry{
		BarbershopID:  ap.BarbershopID,
		SedeID:        ap.SedeID,
		AppointmentID: ap.ID,
		Type:          models.FinanceRevenue,
		Amount:        svc.Price,
		Description:   fmt.Sprintf("%s (agendamento #%d)", svc.Name, ap.ID),
	}
}
