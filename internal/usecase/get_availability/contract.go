package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListOccupancyForDate(ctx context.Context, roomID int64, date time.Time) ([]domain.SlotOccupancy, error)
}

// RoomRepository интерфейс репозитория залов
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// CalendarService интерфейс сервиса производственного календаря
type CalendarService interface {
	IsWeekendOrHoliday(ctx context.Context, date time.Time) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
