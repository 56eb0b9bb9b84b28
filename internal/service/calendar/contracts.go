package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
)

// HolidayRepository интерфейс репозитория праздничных дней
type HolidayRepository interface {
	Upsert(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	DeleteByDate(ctx context.Context, date time.Time) error
	ExistsByDate(ctx context.Context, date time.Time) (bool, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error)
}

// KVStore интерфейс кеша ключ-значение
// Реализация поверх Redis опциональна: при nil сервис ходит напрямую в репозиторий
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
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
