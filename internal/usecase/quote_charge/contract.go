package quote_charge

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// RoomRepository интерфейс репозитория залов
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetRateTable(ctx context.Context, roomID int64) (*domain.RoomRateTable, error)
	GetEquipmentByIDs(ctx context.Context, roomID int64, ids []int64) ([]*domain.Equipment, error)
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
