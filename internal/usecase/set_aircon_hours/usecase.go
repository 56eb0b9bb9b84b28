package set_aircon_hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
	memberClient "github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/internal/pricing"
)

// UseCase use case для установки фактических часов кондиционера
// Часы вносятся сотрудником после фактического использования, после чего
// разбивка стоимости дня и итоговая сумма бронирования пересчитываются
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	memberClient    MemberServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	memberClient MemberServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		memberClient:    memberClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case установки часов кондиционера
// Коэффициент за платный вход и признак выходного дня берутся сохранёнными
// на момент бронирования, тариф кондиционера - актуальный из тарифной таблицы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetAirconHours: usage=%d of reservation=%d, hours=%.2f by staff=%d",
		req.UsageID, req.ReservationID, req.Hours, req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SetAirconHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа - только сотрудники вносят фактические часы
	if err := uc.checkStaffAccess(ctx, req.StaffID); err != nil {
		uc.logger.Warn("SetAirconHours: access denied for member=%d", req.StaffID)
		return nil, err
	}

	// 3. Пересчитываем стоимость и обновляем день использования и итог
	// в одной транзакции
	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		usage, err := uc.reservationRepo.GetUsageByID(txCtx, req.UsageID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrUsageNotFound) {
				return ErrUsageNotFound
			}
			return fmt.Errorf("%w: failed to get usage: %v", ErrInternal, err)
		}

		// День использования должен принадлежать бронированию из запроса
		if usage.ReservationID != req.ReservationID {
			return ErrUsageNotFound
		}

		if !usage.AirconRequested {
			return ErrAirconNotRequested
		}

		reservation, err := uc.reservationRepo.GetByID(txCtx, usage.ReservationID)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if reservation.IsCancelled() {
			return ErrReservationCancelled
		}

		// Тарифная таблица существовала на момент бронирования,
		// её отсутствие теперь - нарушение целостности данных
		table, err := uc.roomRepo.GetRateTable(txCtx, usage.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRateTableNotFound) {
				return fmt.Errorf("%w: rate table missing for room %d", ErrInternal, usage.RoomID)
			}
			return fmt.Errorf("%w: failed to get rate table: %v", ErrInternal, err)
		}

		sel := usage.Selection()
		sel.AirconHours = &req.Hours

		charge := pricing.ComputeCharge(table, &sel, usage.Equipment, usage.TicketMultiplier, usage.WeekendOrHoliday)

		if err := uc.reservationRepo.UpdateUsageAircon(txCtx, req.UsageID, req.Hours, charge); err != nil {
			if errors.Is(err, reservationRepo.ErrUsageNotFound) {
				return ErrUsageNotFound
			}
			return fmt.Errorf("%w: failed to update usage: %v", ErrInternal, err)
		}

		newTotal := reservation.TotalCharge - usage.Charge.Subtotal + charge.Subtotal
		if err := uc.reservationRepo.UpdateTotalCharge(txCtx, reservation.ID, newTotal); err != nil {
			return fmt.Errorf("%w: failed to update total charge: %v", ErrInternal, err)
		}

		resp = &Response{
			ReservationID:    reservation.ID,
			UsageID:          req.UsageID,
			AirconHours:      req.Hours,
			Charge:           fromDomainCharge(charge),
			ReservationTotal: newTotal,
		}

		return nil
	})

	if err != nil {
		if isBusinessError(err) {
			uc.logger.Warn("SetAirconHours: rejected for usage=%d: %v", req.UsageID, err)
		} else {
			uc.logger.Error("SetAirconHours: failed for usage=%d: %v", req.UsageID, err)
		}
		return nil, err
	}

	uc.logger.Info("SetAirconHours: successfully updated usage=%d, subtotal=%d, reservation total=%d",
		req.UsageID, resp.Charge.Subtotal, resp.ReservationTotal)

	return resp, nil
}

// validateRequest валидирует входные данные запроса
// Ноль часов допустим: кондиционер был заказан, но фактически не использовался
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.UsageID <= 0 {
		return fmt.Errorf("%w: usageID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Hours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrInvalidInput)
	}

	if req.Hours > domain.MaxAirconHours {
		return fmt.Errorf("%w: hours must not exceed %.0f", ErrInvalidInput, domain.MaxAirconHours)
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
		uc.logger.Error("SetAirconHours: failed to get member id=%d: %v", memberID, err)
		return fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	if !member.Active || !member.IsStaff() {
		return ErrAccessDenied
	}

	return nil
}

// isBusinessError отличает ожидаемые отказы от инфраструктурных сбоев
func isBusinessError(err error) bool {
	return errors.Is(err, ErrUsageNotFound) ||
		errors.Is(err, ErrReservationCancelled) ||
		errors.Is(err, ErrAirconNotRequested)
}

// fromDomainCharge конвертирует доменную разбивку стоимости в ответ use case
func fromDomainCharge(charge domain.ChargeBreakdown) ChargeBreakdown {
	return ChargeBreakdown{
		RoomBeforeMultiplier: charge.RoomBeforeMultiplier,
		RoomAfterMultiplier:  charge.RoomAfterMultiplier,
		Equipment:            charge.Equipment,
		Aircon:               charge.Aircon,
		Subtotal:             charge.Subtotal,
	}
}
