package cancel_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
)

// Стабы зависимостей

type stubReservationRepo struct {
	getByID             func(ctx context.Context, id int64) (*domain.Reservation, error)
	cancel              func(ctx context.Context, id int64, status domain.ReservationStatus, reason string, cancelledAt time.Time, fee int64) error
	updatePaymentStatus func(ctx context.Context, id int64, status domain.PaymentStatus) error

	cancelledStatus domain.ReservationStatus
	cancelledFee    int64
	cancelledAt     time.Time
	paymentUpdates  []domain.PaymentStatus
}

func (s *stubReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.getByID(ctx, id)
}

func (s *stubReservationRepo) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string, cancelledAt time.Time, fee int64) error {
	s.cancelledStatus = status
	s.cancelledFee = fee
	s.cancelledAt = cancelledAt
	if s.cancel != nil {
		return s.cancel(ctx, id, status, reason, cancelledAt, fee)
	}
	return nil
}

func (s *stubReservationRepo) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	s.paymentUpdates = append(s.paymentUpdates, status)
	if s.updatePaymentStatus != nil {
		return s.updatePaymentStatus(ctx, id, status)
	}
	return nil
}

type stubMemberClient struct {
	member *memberservice.Member
	err    error
}

func (s *stubMemberClient) GetMember(context.Context, int64) (*memberservice.Member, error) {
	return s.member, s.err
}

type stubPaymentClient struct {
	refundErr error

	refundCalls  int
	refundAmount int64
}

func (s *stubPaymentClient) Refund(_ context.Context, _ int64, amount int64) error {
	s.refundCalls++
	s.refundAmount = amount
	return s.refundErr
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Общие данные

const ownerID int64 = 7

// reservationWithUsage бронирование с одним днём использования на заданную дату
func reservationWithUsage(usageDate time.Time, subtotal int64) *domain.Reservation {
	return &domain.Reservation{
		ID:            100,
		MemberID:      ownerID,
		Purpose:       "Репетиция оркестра",
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentUnpaid,
		TotalCharge:   subtotal,
		Usages: []domain.ReservationUsage{
			{
				ID:        200,
				RoomID:    1,
				UsageDate: usageDate,
				Morning:   true,
				Charge:    domain.ChargeBreakdown{Subtotal: subtotal},
			},
		},
	}
}

type testEnv struct {
	reservations *stubReservationRepo
	members      *stubMemberClient
	payments     *stubPaymentClient
	uc           *UseCase
}

func newTestEnv(reservation *domain.Reservation, now time.Time) *testEnv {
	env := &testEnv{
		reservations: &stubReservationRepo{
			getByID: func(context.Context, int64) (*domain.Reservation, error) {
				return reservation, nil
			},
		},
		members:  &stubMemberClient{},
		payments: &stubPaymentClient{},
	}
	env.uc = NewUseCase(env.reservations, env.members, env.payments, nopLogger{})
	env.uc.timeProvider = fixedTime{now: now}
	return env
}

func ownerRequest() *Request {
	return &Request{ReservationID: 100, MemberID: ownerID, Reason: "Изменились планы"}
}

// Тесты

// Отмена накануне дня использования бесплатна
func TestExecute_CancelBeforeUsageDate(t *testing.T) {
	usageDate := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 12, 24, 23, 59, 59, 0, time.UTC)
	env := newTestEnv(reservationWithUsage(usageDate, 35000), now)

	resp, err := env.uc.Execute(context.Background(), ownerRequest())

	require.NoError(t, err)
	assert.Equal(t, "cancelled_by_member", resp.Status)
	assert.Equal(t, int64(0), resp.CancellationFee)
	assert.Equal(t, int64(35000), resp.RefundAmount)
	assert.Equal(t, now, resp.CancelledAt)
	assert.Equal(t, int64(0), env.reservations.cancelledFee)
}

// Отмена в день использования удерживает полную стоимость дня
func TestExecute_CancelOnUsageDate(t *testing.T) {
	usageDate := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(reservationWithUsage(usageDate, 35000), now)

	resp, err := env.uc.Execute(context.Background(), ownerRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(35000), resp.CancellationFee)
	assert.Equal(t, int64(0), resp.RefundAmount)
	assert.Equal(t, int64(35000), env.reservations.cancelledFee)
}

// Сбор считается по каждому дню отдельно: прошедший день платный, будущий нет
func TestExecute_FeePerUsageDay(t *testing.T) {
	now := time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC)
	reservation := reservationWithUsage(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), 15000)
	reservation.TotalCharge = 35000
	reservation.Usages = append(reservation.Usages, domain.ReservationUsage{
		ID:        201,
		RoomID:    1,
		UsageDate: time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
		Afternoon: true,
		Charge:    domain.ChargeBreakdown{Subtotal: 20000},
	})
	env := newTestEnv(reservation, now)

	resp, err := env.uc.Execute(context.Background(), ownerRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(15000), resp.CancellationFee)
	assert.Equal(t, int64(20000), resp.RefundAmount)
}

// Сотрудник отменяет чужое бронирование со статусом cancelled_by_staff
func TestExecute_StaffCancelsForeignReservation(t *testing.T) {
	usageDate := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(reservationWithUsage(usageDate, 35000), now)
	env.members.member = &memberservice.Member{ID: 42, Name: "Петрова Анна", Role: memberservice.RoleStaff, Active: true}

	req := ownerRequest()
	req.MemberID = 42

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "cancelled_by_staff", resp.Status)
	assert.Equal(t, domain.StatusCancelledByStaff, env.reservations.cancelledStatus)
}

func TestExecute_AccessDenied(t *testing.T) {
	tests := []struct {
		name   string
		member *memberservice.Member
		err    error
	}{
		{
			name:   "обычный участник не владелец",
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
			usageDate := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
			now := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)
			env := newTestEnv(reservationWithUsage(usageDate, 35000), now)
			env.members.member = tt.member
			env.members.err = tt.err

			req := ownerRequest()
			req.MemberID = 42

			_, err := env.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrAccessDenied)
		})
	}
}

func TestExecute_CannotCancelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status domain.ReservationStatus
	}{
		{name: "завершённое бронирование", status: domain.StatusCompleted},
		{name: "уже отменено участником", status: domain.StatusCancelledByMember},
		{name: "уже отменено сотрудником", status: domain.StatusCancelledByStaff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usageDate := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
			now := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)
			reservation := reservationWithUsage(usageDate, 35000)
			reservation.Status = tt.status
			env := newTestEnv(reservation, now)

			_, err := env.uc.Execute(context.Background(), ownerRequest())

			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

// Оплаченное бронирование возвращается за вычетом сбора
func TestExecute_RefundForPaidReservation(t *testing.T) {
	now := time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC)
	reservation := reservationWithUsage(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), 15000)
	reservation.TotalCharge = 35000
	reservation.PaymentStatus = domain.PaymentPaid
	reservation.Usages = append(reservation.Usages, domain.ReservationUsage{
		ID:        201,
		RoomID:    1,
		UsageDate: time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
		Afternoon: true,
		Charge:    domain.ChargeBreakdown{Subtotal: 20000},
	})
	env := newTestEnv(reservation, now)

	resp, err := env.uc.Execute(context.Background(), ownerRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(20000), resp.RefundAmount)
	assert.Equal(t, 1, env.payments.refundCalls)
	assert.Equal(t, int64(20000), env.payments.refundAmount)
	require.Len(t, env.reservations.paymentUpdates, 1)
	assert.Equal(t, domain.PaymentRefunded, env.reservations.paymentUpdates[0])
}

// Неоплаченное бронирование не требует возврата средств
func TestExecute_NoRefundForUnpaidReservation(t *testing.T) {
	usageDate := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(reservationWithUsage(usageDate, 35000), now)

	resp, err := env.uc.Execute(context.Background(), ownerRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(35000), resp.RefundAmount)
	assert.Equal(t, 0, env.payments.refundCalls)
	assert.Empty(t, env.reservations.paymentUpdates)
}

// Оплаченное бронирование с полным удержанием не требует возврата
func TestExecute_NoRefundWhenFeeConsumesTotal(t *testing.T) {
	usageDate := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)
	reservation := reservationWithUsage(usageDate, 35000)
	reservation.PaymentStatus = domain.PaymentPaid
	env := newTestEnv(reservation, now)

	resp, err := env.uc.Execute(context.Background(), ownerRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.RefundAmount)
	assert.Equal(t, 0, env.payments.refundCalls)
}

// Сбой возврата не откатывает отмену: статус оплаты остаётся прежним
func TestExecute_RefundFailureKeepsCancellation(t *testing.T) {
	usageDate := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)
	reservation := reservationWithUsage(usageDate, 35000)
	reservation.PaymentStatus = domain.PaymentPaid
	env := newTestEnv(reservation, now)
	env.payments.refundErr = errors.New("payment gateway timeout")

	resp, err := env.uc.Execute(context.Background(), ownerRequest())

	require.NoError(t, err)
	assert.Equal(t, "cancelled_by_member", resp.Status)
	assert.Equal(t, 1, env.payments.refundCalls)
	assert.Empty(t, env.reservations.paymentUpdates)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	env := newTestEnv(nil, time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC))
	env.reservations.getByID = func(context.Context, int64) (*domain.Reservation, error) {
		return nil, reservationRepo.ErrReservationNotFound
	}

	_, err := env.uc.Execute(context.Background(), ownerRequest())

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		request *Request
	}{
		{name: "нулевой ID бронирования", request: &Request{ReservationID: 0, MemberID: ownerID}},
		{name: "нулевой ID участника", request: &Request{ReservationID: 100, MemberID: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(reservationWithUsage(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), 35000), time.Now())

			_, err := env.uc.Execute(context.Background(), tt.request)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
