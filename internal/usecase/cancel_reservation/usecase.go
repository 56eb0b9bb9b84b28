package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/reservation"
	memberClient "github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/internal/pricing"
)

// UseCase use case для отмены бронирования
// Участник отменяет своё бронирование, сотрудник - любое
type UseCase struct {
	reservationRepo ReservationRepository
	memberClient    MemberServiceClient
	paymentClient   PaymentClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	memberClient MemberServiceClient,
	paymentClient PaymentClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		memberClient:    memberClient,
		paymentClient:   paymentClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены бронирования
// Сбор за отмену считается по каждому дню использования: отмена строго до даты
// использования бесплатна, в день использования или позже удерживается полная
// стоимость дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%d by member=%d", req.ReservationID, req.MemberID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время - тот же момент пишется в cancelled_at
	// и участвует в расчёте сбора
	now := uc.timeProvider.Now()

	// 3. Получаем бронирование
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 4. Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.ReservationStatus

	// Владелец отменяет своё бронирование без дополнительных проверок
	if reservation.MemberID == req.MemberID {
		cancelStatus = domain.StatusCancelledByMember
	} else {
		// Не владелец должен быть действующим сотрудником
		if err := uc.checkStaffAccess(ctx, req.MemberID); err != nil {
			uc.logger.Warn("CancelReservation: access denied for member=%d to reservation id=%d", req.MemberID, req.ReservationID)
			return nil, err
		}
		cancelStatus = domain.StatusCancelledByStaff
	}

	// 5. Проверяем, можно ли отменить бронирование
	if !reservation.CanBeCancelled() {
		uc.logger.Warn("CancelReservation: reservation id=%d cannot be cancelled, status=%s", req.ReservationID, reservation.Status)
		return nil, ErrCannotCancel
	}

	// 6. Считаем сбор за отмену по каждому дню использования
	var fee int64
	for i := range reservation.Usages {
		usage := &reservation.Usages[i]
		fee += pricing.CancellationFee(usage.UsageDate, &now, usage.Charge.Subtotal)
	}

	// 7. Отменяем бронирование
	if err := uc.reservationRepo.Cancel(ctx, req.ReservationID, cancelStatus, req.Reason, now, fee); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found during cancellation", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}

	reservation.Status = cancelStatus
	reservation.CancellationFee = fee

	// 8. Возвращаем деньги, если бронирование было оплачено
	// Ошибки возврата не откатывают отмену: они логируются и разбираются вручную
	refund := reservation.RefundDue()
	if reservation.IsPaid() && refund > 0 {
		if err := uc.paymentClient.Refund(ctx, req.ReservationID, refund); err != nil {
			uc.logger.Error("CancelReservation: refund failed for reservation id=%d, amount=%d: %v", req.ReservationID, refund, err)
		} else if err := uc.reservationRepo.UpdatePaymentStatus(ctx, req.ReservationID, domain.PaymentRefunded); err != nil {
			uc.logger.Error("CancelReservation: failed to mark reservation id=%d as refunded: %v", req.ReservationID, err)
		}
	}

	uc.logger.Info("CancelReservation: successfully cancelled reservation id=%d with status=%s, fee=%d, refund=%d",
		req.ReservationID, cancelStatus, fee, refund)

	return &Response{
		ID:              req.ReservationID,
		Status:          string(cancelStatus),
		TotalCharge:     reservation.TotalCharge,
		CancellationFee: fee,
		RefundAmount:    refund,
		CancelledAt:     now,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// checkStaffAccess проверяет, что участник является действующим сотрудником
func (uc *UseCase) checkStaffAccess(ctx context.Context, memberID int64) error {
	member, err := uc.memberClient.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			return ErrAccessDenied
		}
		uc.logger.Error("CancelReservation: failed to get member id=%d: %v", memberID, err)
		return fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	if !member.Active || !member.IsStaff() {
		return ErrAccessDenied
	}

	return nil
}
