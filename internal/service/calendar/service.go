package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/infra/cache"
	holidayRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/holiday"
	memberClient "github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/calendar/models"
)

const (
	cacheKeyPrefix  = "holiday:"
	cacheValueTrue  = "1"
	cacheValueFalse = "0"
)

// Service сервис производственного календаря
// Отвечает на вопрос "выходной или праздничный ли день" и управляет списком праздников
type Service struct {
	holidayRepo  HolidayRepository
	kv           KVStore
	cacheTTL     time.Duration
	memberClient MemberServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря
// kv может быть nil - тогда проверка праздников идёт напрямую в репозиторий
func NewService(
	holidayRepo HolidayRepository,
	kv KVStore,
	cacheTTL time.Duration,
	memberClient MemberServiceClient,
	logger Logger,
) *Service {
	return &Service{
		holidayRepo:  holidayRepo,
		kv:           kv,
		cacheTTL:     cacheTTL,
		memberClient: memberClient,
		logger:       logger,
	}
}

// IsWeekendOrHoliday определяет, действует ли на дату расценка выходного дня
// Выходным считается суббота, воскресенье или день из таблицы праздников
func (s *Service) IsWeekendOrHoliday(ctx context.Context, date time.Time) (bool, error) {
	day := normalizeDate(date)

	if weekday := day.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		return true, nil
	}

	return s.isHoliday(ctx, day)
}

// UpsertHoliday добавляет или обновляет праздничный день
// Доступно только сотрудникам
func (s *Service) UpsertHoliday(ctx context.Context, req *models.UpsertHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("UpsertHoliday: date=%s by staff=%d", req.Date.Format(domain.DateFormat), req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.logger.Warn("UpsertHoliday: empty holiday name from staff=%d", req.StaffID)
		return nil, fmt.Errorf("%w: holiday name is required", ErrInvalidInput)
	}

	holiday := &domain.Holiday{
		Date: normalizeDate(req.Date),
		Name: name,
	}

	saved, err := s.holidayRepo.Upsert(ctx, holiday)
	if err != nil {
		s.logger.Error("UpsertHoliday: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: UpsertHoliday - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx, saved.Date)

	s.logger.Info("UpsertHoliday: successfully saved holiday id=%d date=%s", saved.ID, saved.Date.Format(domain.DateFormat))
	return models.FromDomainHoliday(saved), nil
}

// RemoveHoliday удаляет праздничный день
// Доступно только сотрудникам
func (s *Service) RemoveHoliday(ctx context.Context, staffID int64, date time.Time) error {
	s.logger.Info("RemoveHoliday: date=%s by staff=%d", date.Format(domain.DateFormat), staffID)

	if err := s.checkStaffAccess(ctx, staffID); err != nil {
		return err
	}

	day := normalizeDate(date)

	if err := s.holidayRepo.DeleteByDate(ctx, day); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("RemoveHoliday: holiday for date=%s not found", day.Format(domain.DateFormat))
			return ErrHolidayNotFound
		}
		s.logger.Error("RemoveHoliday: repository error for date=%s: %v", day.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: RemoveHoliday - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx, day)

	s.logger.Info("RemoveHoliday: successfully removed holiday for date=%s", day.Format(domain.DateFormat))
	return nil
}

// ListHolidays возвращает праздничные дни за период
func (s *Service) ListHolidays(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidayListResponse, error) {
	from := normalizeDate(req.From)
	to := normalizeDate(req.To)

	if from.After(to) {
		s.logger.Warn("ListHolidays: invalid range from=%s to=%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: range start is after range end", ErrInvalidInput)
	}

	holidays, err := s.holidayRepo.ListByRange(ctx, from, to)
	if err != nil {
		s.logger.Error("ListHolidays: repository error for range %s..%s: %v", from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListHolidays - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHolidayList(holidays), nil
}

// Вспомогательные методы

// isHoliday проверяет наличие даты в таблице праздников через кеш
func (s *Service) isHoliday(ctx context.Context, day time.Time) (bool, error) {
	key := cacheKey(day)

	if s.kv != nil {
		value, err := s.kv.Get(ctx, key)
		if err == nil {
			return value == cacheValueTrue, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Кеш недоступен - идём в репозиторий, но не роняем запрос
			s.logger.Warn("isHoliday: cache read failed for key=%s: %v", key, err)
		}
	}

	exists, err := s.holidayRepo.ExistsByDate(ctx, day)
	if err != nil {
		s.logger.Error("isHoliday: repository error for date=%s: %v", day.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: isHoliday - repository error: %v", ErrInternal, err)
	}

	if s.kv != nil {
		value := cacheValueFalse
		if exists {
			value = cacheValueTrue
		}
		if err := s.kv.Set(ctx, key, value, s.cacheTTL); err != nil {
			s.logger.Warn("isHoliday: cache write failed for key=%s: %v", key, err)
		}
	}

	return exists, nil
}

// invalidateCache сбрасывает закешированный ответ для даты
func (s *Service) invalidateCache(ctx context.Context, day time.Time) {
	if s.kv == nil {
		return
	}

	key := cacheKey(day)
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Warn("invalidateCache: cache delete failed for key=%s: %v", key, err)
	}
}

// checkStaffAccess проверяет, что участник является действующим сотрудником
func (s *Service) checkStaffAccess(ctx context.Context, staffID int64) error {
	member, err := s.memberClient.GetMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			s.logger.Warn("checkStaffAccess: member id=%d not found", staffID)
			return ErrMemberNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get member id=%d: %v", staffID, err)
		return fmt.Errorf("%w: checkStaffAccess - member service error: %v", ErrInternal, err)
	}

	if !member.Active || !member.IsStaff() {
		s.logger.Warn("checkStaffAccess: member id=%d is not an active staff member", staffID)
		return ErrAccessDenied
	}

	return nil
}

func cacheKey(day time.Time) string {
	return cacheKeyPrefix + day.Format(domain.DateFormat)
}

func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
