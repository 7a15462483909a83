package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// parseCalendarDate reads a YYYY-MM-DD query value. Only the calendar fields
// are used downstream; the barbershop's zone is applied by the use case.
func parseCalendarDate(date string) (time.Time, error) {
	return time.Parse(timezone.DateLayout, date)
}

func parseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func staffIDs(c *gin.Context) (userID uint, barbershopID uint) {
	return c.MustGet(middleware.ContextUserID).(uint),
		c.MustGet(middleware.ContextBarbershopID).(uint)
}
