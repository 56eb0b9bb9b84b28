package calendar

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/infra/cache"
	holidayRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/calendar/models"
)

// fakeKV хранилище ключ-значение в памяти для тестов
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string

	getCalls    int
	setCalls    int
	deleteCalls int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++

	value, ok := f.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return value, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++

	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++

	delete(f.data, key)
	return nil
}

// stubHolidayRepo репозиторий праздников с подменяемым поведением
type stubHolidayRepo struct {
	upsert       func(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	deleteByDate func(ctx context.Context, date time.Time) error
	existsByDate func(ctx context.Context, date time.Time) (bool, error)
	listByRange  func(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error)

	existsCalls int
}

func (s *stubHolidayRepo) Upsert(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error) {
	return s.upsert(ctx, holiday)
}

func (s *stubHolidayRepo) DeleteByDate(ctx context.Context, date time.Time) error {
	return s.deleteByDate(ctx, date)
}

func (s *stubHolidayRepo) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	s.existsCalls++
	return s.existsByDate(ctx, date)
}

func (s *stubHolidayRepo) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error) {
	return s.listByRange(ctx, from, to)
}

// stubMemberClient клиент MemberService с фиксированным ответом
type stubMemberClient struct {
	member *memberservice.Member
	err    error
}

func (s *stubMemberClient) GetMember(context.Context, int64) (*memberservice.Member, error) {
	return s.member, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeStaff() *stubMemberClient {
	return &stubMemberClient{member: &memberservice.Member{
		ID:     99,
		Name:   "Сотрудник",
		Role:   memberservice.RoleStaff,
		Active: true,
	}}
}

func TestIsWeekendOrHoliday_Weekend(t *testing.T) {
	repo := &stubHolidayRepo{}
	svc := NewService(repo, nil, 0, activeStaff(), nopLogger{})

	saturday := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 1, 4, 15, 30, 0, 0, time.UTC)

	got, err := svc.IsWeekendOrHoliday(context.Background(), saturday)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.IsWeekendOrHoliday(context.Background(), sunday)
	require.NoError(t, err)
	assert.True(t, got)

	// По выходным таблица праздников не опрашивается
	assert.Equal(t, 0, repo.existsCalls)
}

func TestIsWeekendOrHoliday_WeekdayHoliday(t *testing.T) {
	repo := &stubHolidayRepo{
		existsByDate: func(_ context.Context, date time.Time) (bool, error) {
			return date.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)), nil
		},
	}
	svc := NewService(repo, nil, 0, activeStaff(), nopLogger{})

	// Четверг, но праздник
	holiday := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	got, err := svc.IsWeekendOrHoliday(context.Background(), holiday)
	require.NoError(t, err)
	assert.True(t, got)

	// Обычный понедельник
	monday := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	got, err = svc.IsWeekendOrHoliday(context.Background(), monday)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsWeekendOrHoliday_CachesRepositoryAnswer(t *testing.T) {
	repo := &stubHolidayRepo{
		existsByDate: func(context.Context, time.Time) (bool, error) {
			return true, nil
		},
	}
	kv := newFakeKV()
	svc := NewService(repo, kv, time.Hour, activeStaff(), nopLogger{})

	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := svc.IsWeekendOrHoliday(context.Background(), day)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 1, repo.existsCalls)
	assert.Equal(t, "1", kv.data["holiday:2026-01-01"])

	// Повторный запрос обслуживается из кеша
	got, err = svc.IsWeekendOrHoliday(context.Background(), day)
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 1, repo.existsCalls)
}

func TestIsWeekendOrHoliday_CachesNegativeAnswer(t *testing.T) {
	repo := &stubHolidayRepo{
		existsByDate: func(context.Context, time.Time) (bool, error) {
			return false, nil
		},
	}
	kv := newFakeKV()
	svc := NewService(repo, kv, time.Hour, activeStaff(), nopLogger{})

	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	got, err := svc.IsWeekendOrHoliday(context.Background(), day)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, "0", kv.data["holiday:2026-01-05"])

	got, err = svc.IsWeekendOrHoliday(context.Background(), day)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, 1, repo.existsCalls)
}

func TestUpsertHoliday_InvalidatesCache(t *testing.T) {
	repo := &stubHolidayRepo{
		upsert: func(_ context.Context, holiday *domain.Holiday) (*domain.Holiday, error) {
			saved := *holiday
			saved.ID = 7
			return &saved, nil
		},
	}
	kv := newFakeKV()
	// Устаревший отрицательный ответ в кеше
	kv.data["holiday:2026-03-09"] = "0"

	svc := NewService(repo, kv, time.Hour, activeStaff(), nopLogger{})

	resp, err := svc.UpsertHoliday(context.Background(), &models.UpsertHolidayRequest{
		StaffID: 99,
		Date:    time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Name:    "Перенесённый выходной",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)

	_, cached := kv.data["holiday:2026-03-09"]
	assert.False(t, cached, "stale cache entry must be dropped")
}

func TestUpsertHoliday_RequiresStaff(t *testing.T) {
	repo := &stubHolidayRepo{}
	regular := &stubMemberClient{member: &memberservice.Member{
		ID:     5,
		Role:   memberservice.RoleMember,
		Active: true,
	}}
	svc := NewService(repo, nil, 0, regular, nopLogger{})

	_, err := svc.UpsertHoliday(context.Background(), &models.UpsertHolidayRequest{
		StaffID: 5,
		Date:    time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Name:    "Праздник",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpsertHoliday_UnknownMember(t *testing.T) {
	repo := &stubHolidayRepo{}
	missing := &stubMemberClient{err: memberservice.ErrMemberNotFound}
	svc := NewService(repo, nil, 0, missing, nopLogger{})

	_, err := svc.UpsertHoliday(context.Background(), &models.UpsertHolidayRequest{
		StaffID: 404,
		Date:    time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Name:    "Праздник",
	})

	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestUpsertHoliday_EmptyName(t *testing.T) {
	repo := &stubHolidayRepo{}
	svc := NewService(repo, nil, 0, activeStaff(), nopLogger{})

	_, err := svc.UpsertHoliday(context.Background(), &models.UpsertHolidayRequest{
		StaffID: 99,
		Date:    time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Name:    "   ",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveHoliday_InvalidatesCache(t *testing.T) {
	repo := &stubHolidayRepo{
		deleteByDate: func(context.Context, time.Time) error {
			return nil
		},
	}
	kv := newFakeKV()
	kv.data["holiday:2026-01-01"] = "1"

	svc := NewService(repo, kv, time.Hour, activeStaff(), nopLogger{})

	err := svc.RemoveHoliday(context.Background(), 99, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, cached := kv.data["holiday:2026-01-01"]
	assert.False(t, cached)
}

func TestRemoveHoliday_NotFound(t *testing.T) {
	repo := &stubHolidayRepo{
		deleteByDate: func(context.Context, time.Time) error {
			return holidayRepo.ErrHolidayNotFound
		},
	}
	svc := NewService(repo, nil, 0, activeStaff(), nopLogger{})

	err := svc.RemoveHoliday(context.Background(), 99, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, ErrHolidayNotFound)
}

func TestListHolidays_InvalidRange(t *testing.T) {
	repo := &stubHolidayRepo{}
	svc := NewService(repo, nil, 0, activeStaff(), nopLogger{})

	_, err := svc.ListHolidays(context.Background(), &models.ListHolidaysRequest{
		From: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListHolidays_ReturnsRange(t *testing.T) {
	repo := &stubHolidayRepo{
		listByRange: func(_ context.Context, from, to time.Time) ([]*domain.Holiday, error) {
			return []*domain.Holiday{
				{ID: 1, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Name: "Новый год"},
				{ID: 2, Date: time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), Name: "Рождество"},
			}, nil
		},
	}
	svc := NewService(repo, nil, 0, activeStaff(), nopLogger{})

	resp, err := svc.ListHolidays(context.Background(), &models.ListHolidaysRequest{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Holidays, 2)
	assert.Equal(t, "Новый год", resp.Holidays[0].Name)
}
