package remove_holiday

import (
	"context"
	"time"
)

type CalendarService interface {
	RemoveHoliday(ctx context.Context, staffID int64, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
