package set_aircon_hours

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

// Стабы зависимостей

type stubReservationRepo struct {
	getByID      func(ctx context.Context, id int64) (*domain.Reservation, error)
	getUsageByID func(ctx context.Context, usageID int64) (*domain.ReservationUsage, error)

	updatedHours  float64
	updatedCharge domain.ChargeBreakdown
	updatedTotal  int64
	updateCalls   int
}

func (s *stubReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.getByID(ctx, id)
}

func (s *stubReservationRepo) GetUsageByID(ctx context.Context, usageID int64) (*domain.ReservationUsage, error) {
	return s.getUsageByID(ctx, usageID)
}

func (s *stubReservationRepo) UpdateUsageAircon(_ context.Context, _ int64, hours float64, charge domain.ChargeBreakdown) error {
	s.updateCalls++
	s.updatedHours = hours
	s.updatedCharge = charge
	return nil
}

func (s *stubReservationRepo) UpdateTotalCharge(_ context.Context, _ int64, total int64) error {
	s.updatedTotal = total
	return nil
}

type stubRoomRepo struct {
	getRateTable func(ctx context.Context, roomID int64) (*domain.RoomRateTable, error)
}

func (s *stubRoomRepo) GetRateTable(ctx context.Context, roomID int64) (*domain.RoomRateTable, error) {
	return s.getRateTable(ctx, roomID)
}

type stubMemberClient struct {
	member *memberservice.Member
	err    error
}

func (s *stubMemberClient) GetMember(context.Context, int64) (*memberservice.Member, error) {
	return s.member, s.err
}

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Общие данные

// morningUsage день использования с заказанным кондиционером без внесённых часов
func morningUsage() *domain.ReservationUsage {
	return &domain.ReservationUsage{
		ID:               200,
		ReservationID:    100,
		RoomID:           1,
		UsageDate:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Morning:          true,
		AirconRequested:  true,
		TicketMultiplier: 1.0,
		Charge: domain.ChargeBreakdown{
			RoomBeforeMultiplier: 15000,
			RoomAfterMultiplier:  15000,
			Subtotal:             15000,
		},
	}
}

func confirmedReservation(total int64) *domain.Reservation {
	return &domain.Reservation{
		ID:            100,
		MemberID:      7,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentUnpaid,
		TotalCharge:   total,
	}
}

func weekdayRateTable() *domain.RoomRateTable {
	return &domain.RoomRateTable{
		RoomID: 1,
		Weekday: domain.RateSet{
			Morning:          15000,
			Afternoon:        20000,
			Evening:          18000,
			MiddayExtension:  3000,
			EveningExtension: 3000,
		},
		AirconPricePerHour: 1000,
	}
}

func activeStaff() *memberservice.Member {
	return &memberservice.Member{ID: 42, Name: "Петрова Анна", Role: memberservice.RoleStaff, Active: true}
}

type testEnv struct {
	reservations *stubReservationRepo
	rooms        *stubRoomRepo
	members      *stubMemberClient
	uc           *UseCase
}

func newTestEnv(usage *domain.ReservationUsage, reservation *domain.Reservation) *testEnv {
	env := &testEnv{
		reservations: &stubReservationRepo{
			getByID: func(context.Context, int64) (*domain.Reservation, error) {
				return reservation, nil
			},
			getUsageByID: func(context.Context, int64) (*domain.ReservationUsage, error) {
				return usage, nil
			},
		},
		rooms: &stubRoomRepo{
			getRateTable: func(context.Context, int64) (*domain.RoomRateTable, error) {
				return weekdayRateTable(), nil
			},
		},
		members: &stubMemberClient{member: activeStaff()},
	}
	env.uc = NewUseCase(env.reservations, env.rooms, env.members, stubTxManager{}, nopLogger{})
	return env
}

func staffRequest(hours float64) *Request {
	return &Request{ReservationID: 100, UsageID: 200, StaffID: 42, Hours: hours}
}

// Тесты

func TestExecute_RecomputesChargeAndTotal(t *testing.T) {
	env := newTestEnv(morningUsage(), confirmedReservation(15000))

	resp, err := env.uc.Execute(context.Background(), staffRequest(2.5))

	require.NoError(t, err)
	assert.Equal(t, 2.5, resp.AirconHours)
	assert.Equal(t, int64(15000), resp.Charge.RoomAfterMultiplier)
	assert.Equal(t, int64(2500), resp.Charge.Aircon)
	assert.Equal(t, int64(17500), resp.Charge.Subtotal)
	assert.Equal(t, int64(17500), resp.ReservationTotal)

	assert.Equal(t, 1, env.reservations.updateCalls)
	assert.Equal(t, 2.5, env.reservations.updatedHours)
	assert.Equal(t, int64(17500), env.reservations.updatedCharge.Subtotal)
	assert.Equal(t, int64(17500), env.reservations.updatedTotal)
}

// Сохранённый множитель применяется к залу, кондиционер не умножается
func TestExecute_UsesStoredMultiplier(t *testing.T) {
	usage := morningUsage()
	usage.TicketMultiplier = 1.5
	usage.Charge = domain.ChargeBreakdown{
		RoomBeforeMultiplier: 15000,
		RoomAfterMultiplier:  22500,
		Subtotal:             22500,
	}
	env := newTestEnv(usage, confirmedReservation(22500))

	resp, err := env.uc.Execute(context.Background(), staffRequest(2.5))

	require.NoError(t, err)
	assert.Equal(t, int64(22500), resp.Charge.RoomAfterMultiplier)
	assert.Equal(t, int64(2500), resp.Charge.Aircon)
	assert.Equal(t, int64(25000), resp.Charge.Subtotal)
	assert.Equal(t, int64(25000), resp.ReservationTotal)
}

// Сохранённый признак выходного дня включает тариф выходного
func TestExecute_UsesStoredWeekendFlag(t *testing.T) {
	usage := morningUsage()
	usage.WeekendOrHoliday = true
	usage.Charge = domain.ChargeBreakdown{
		RoomBeforeMultiplier: 25000,
		RoomAfterMultiplier:  25000,
		Subtotal:             25000,
	}
	env := newTestEnv(usage, confirmedReservation(25000))
	env.rooms.getRateTable = func(context.Context, int64) (*domain.RoomRateTable, error) {
		table := weekdayRateTable()
		table.Weekend = &domain.RateSet{Morning: 25000, Afternoon: 30000, Evening: 28000, MiddayExtension: 5000, EveningExtension: 5000}
		return table, nil
	}

	resp, err := env.uc.Execute(context.Background(), staffRequest(2.0))

	require.NoError(t, err)
	assert.Equal(t, int64(25000), resp.Charge.RoomBeforeMultiplier)
	assert.Equal(t, int64(2000), resp.Charge.Aircon)
	assert.Equal(t, int64(27000), resp.Charge.Subtotal)
}

// Ноль часов допустим: кондиционер заказан, но не использовался
func TestExecute_ZeroHoursClearsAirconCharge(t *testing.T) {
	usage := morningUsage()
	usage.AirconHours = ptr.Ptr(3.0)
	usage.Charge = domain.ChargeBreakdown{
		RoomBeforeMultiplier: 15000,
		RoomAfterMultiplier:  15000,
		Aircon:               3000,
		Subtotal:             18000,
	}
	env := newTestEnv(usage, confirmedReservation(18000))

	resp, err := env.uc.Execute(context.Background(), staffRequest(0))

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Charge.Aircon)
	assert.Equal(t, int64(15000), resp.Charge.Subtotal)
	assert.Equal(t, int64(15000), resp.ReservationTotal)
}

// Пересчёт меняет только вклад этого дня в итог бронирования
func TestExecute_TotalChargeDeltaOnly(t *testing.T) {
	env := newTestEnv(morningUsage(), confirmedReservation(53000))

	resp, err := env.uc.Execute(context.Background(), staffRequest(2.0))

	require.NoError(t, err)
	// 53000 - 15000 + 17000
	assert.Equal(t, int64(55000), resp.ReservationTotal)
}

func TestExecute_AirconNotRequested(t *testing.T) {
	usage := morningUsage()
	usage.AirconRequested = false
	env := newTestEnv(usage, confirmedReservation(15000))

	_, err := env.uc.Execute(context.Background(), staffRequest(2.0))

	assert.ErrorIs(t, err, ErrAirconNotRequested)
	assert.Equal(t, 0, env.reservations.updateCalls)
}

func TestExecute_ReservationCancelled(t *testing.T) {
	reservation := confirmedReservation(15000)
	reservation.Status = domain.StatusCancelledByMember
	env := newTestEnv(morningUsage(), reservation)

	_, err := env.uc.Execute(context.Background(), staffRequest(2.0))

	assert.ErrorIs(t, err, ErrReservationCancelled)
}

// День использования из чужого бронирования недоступен
func TestExecute_UsageFromAnotherReservation(t *testing.T) {
	usage := morningUsage()
	usage.ReservationID = 999
	env := newTestEnv(usage, confirmedReservation(15000))

	_, err := env.uc.Execute(context.Background(), staffRequest(2.0))

	assert.ErrorIs(t, err, ErrUsageNotFound)
}

func TestExecute_UsageNotFound(t *testing.T) {
	env := newTestEnv(nil, confirmedReservation(15000))
	env.reservations.getUsageByID = func(context.Context, int64) (*domain.ReservationUsage, error) {
		return nil, reservationRepo.ErrUsageNotFound
	}

	_, err := env.uc.Execute(context.Background(), staffRequest(2.0))

	assert.ErrorIs(t, err, ErrUsageNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	tests := []struct {
		name   string
		member *memberservice.Member
		err    error
	}{
		{
			name:   "обычный участник",
			member: &memberservice.Member{ID: 42, Role: memberservice.RoleMember, Active: true},
		},
		{
			name:   "недействующий сотрудник",
			member: &memberservice.Member{ID: 42, Role: memberservice.RoleStaff, Active: false},
		},
		{
			name: "участник не найден",
			err:  memberservice.ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(morningUsage(), confirmedReservation(15000))
			env.members.member = tt.member
			env.members.err = tt.err

			_, err := env.uc.Execute(context.Background(), staffRequest(2.0))

			assert.ErrorIs(t, err, ErrAccessDenied)
		})
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		request *Request
	}{
		{name: "нулевой ID бронирования", request: &Request{ReservationID: 0, UsageID: 200, StaffID: 42, Hours: 2}},
		{name: "нулевой ID дня использования", request: &Request{ReservationID: 100, UsageID: 0, StaffID: 42, Hours: 2}},
		{name: "отрицательные часы", request: &Request{ReservationID: 100, UsageID: 200, StaffID: 42, Hours: -1}},
		{name: "часы сверх суток", request: &Request{ReservationID: 100, UsageID: 200, StaffID: 42, Hours: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(morningUsage(), confirmedReservation(15000))

			_, err := env.uc.Execute(context.Background(), tt.request)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
