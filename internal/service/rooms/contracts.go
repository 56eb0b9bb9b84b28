package rooms

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
)

// RoomRepository интерфейс репозитория залов
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Room, error)
	GetRateTable(ctx context.Context, roomID int64) (*domain.RoomRateTable, error)
	UpsertRateTable(ctx context.Context, table *domain.RoomRateTable) (*domain.RoomRateTable, error)
	GetEquipment(ctx context.Context, roomID int64, includeInactive bool) ([]*domain.Equipment, error)
}

// MemberServiceClient интерфейс клиента для MemberService
type MemberServiceClient interface {
	GetMember(ctx context.Context, memberID int64) (*memberservice.Member, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
