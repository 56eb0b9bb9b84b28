package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListOccupancyForDate(ctx context.Context, roomID int64, date time.Time) ([]domain.SlotOccupancy, error)
}

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

// MemberServiceClient интерфейс клиента для MemberService
type MemberServiceClient interface {
	GetMemberWithGracefulDegradation(ctx context.Context, memberID int64) (*memberservice.Member, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
