package upsert_holiday

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/calendar/models"
)

type CalendarService interface {
	UpsertHoliday(ctx context.Context, req *models.UpsertHolidayRequest) (*models.HolidayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
