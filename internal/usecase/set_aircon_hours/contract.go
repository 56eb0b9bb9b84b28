package set_aircon_hours

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
)

// ReservationRepository интерфейс для работы с хранилищем бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetUsageByID(ctx context.Context, usageID int64) (*domain.ReservationUsage, error)
	UpdateUsageAircon(ctx context.Context, usageID int64, hours float64, charge domain.ChargeBreakdown) error
	UpdateTotalCharge(ctx context.Context, id int64, total int64) error
}

// RoomRepository интерфейс для работы с хранилищем комнат
type RoomRepository interface {
	GetRateTable(ctx context.Context, roomID int64) (*domain.RoomRateTable, error)
}

// MemberServiceClient интерфейс для работы с сервисом участников
type MemberServiceClient interface {
	GetMember(ctx context.Context, memberID int64) (*memberservice.Member, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
