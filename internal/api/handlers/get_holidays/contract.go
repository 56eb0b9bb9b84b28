package get_holidays

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/calendar/models"
)

type CalendarService interface {
	ListHolidays(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
