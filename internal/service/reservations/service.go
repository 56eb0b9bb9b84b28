package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
	memberClient "github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	memberClient    MemberServiceClient
	paymentClient   PaymentClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	memberClient MemberServiceClient,
	paymentClient PaymentClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		memberClient:    memberClient,
		paymentClient:   paymentClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - участник может видеть только своё бронирование,
// сотрудник может видеть любое
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for member=%d", id, requesterID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if reservation.MemberID != requesterID {
		if err := s.checkStaffAccess(ctx, requesterID); err != nil {
			s.logger.Warn("GetByID: access denied for member=%d to reservation id=%d", requesterID, id)
			return nil, ErrAccessDenied
		}
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetMemberReservations получает историю бронирований участника
// Опционально фильтрует по статусу
func (s *Service) GetMemberReservations(ctx context.Context, req *models.GetMemberReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetMemberReservations: fetching reservations for member=%d, status=%v", req.MemberID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMemberReservations: invalid status=%s for member=%d", *req.Status, req.MemberID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByMemberID(ctx, req.MemberID, domainStatus)
	if err != nil {
		s.logger.Error("GetMemberReservations: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: GetMemberReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMemberReservations: successfully fetched %d reservations for member=%d", len(reservations), req.MemberID)
	return models.FromDomainReservationList(reservations), nil
}

// GetRoomReservations получает бронирования зала с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
// Доступно только сотрудникам
//
// Примеры использования:
// - Все активные бронирования зала: GetRoomReservations(ctx, &GetRoomReservationsRequest{RoomID: 3, StaffID: 42})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetRoomReservations(ctx context.Context, req *models.GetRoomReservationsRequest) (*models.ReservationListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetRoomReservations: fetching reservations for room=%d, staff=%d", req.RoomID, req.StaffID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа сотрудника
	if err := s.checkStaffAccess(ctx, req.StaffID); err != nil {
		return nil, err
	}

	// Проверяем существование зала
	if _, err := s.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetRoomReservations: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoomReservations: repository error for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomReservations - repository error: %v", ErrInternal, err)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetRoomReservations: invalid filter for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	reservations, err := s.reservationRepo.GetByRoomWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRoomReservations: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRoomReservations: successfully fetched %d reservations for room=%d", len(reservations), req.RoomID)
	return models.FromDomainReservationList(reservations), nil
}

// RecordPayment списывает оплату через платёжный сервис и помечает бронирование оплаченным
// Доступно только сотрудникам
func (s *Service) RecordPayment(ctx context.Context, reservationID int64, req *models.RecordPaymentRequest) (*models.ReservationResponse, error) {
	s.logger.Info("RecordPayment: recording payment for reservation id=%d by staff=%d", reservationID, req.StaffID)

	// Проверяем права доступа сотрудника
	if err := s.checkStaffAccess(ctx, req.StaffID); err != nil {
		return nil, err
	}

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("RecordPayment: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("RecordPayment: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: RecordPayment - repository error: %v", ErrInternal, err)
	}

	// Оплатить можно только активное и ещё не оплаченное бронирование
	if reservation.IsCancelled() {
		s.logger.Warn("RecordPayment: reservation id=%d is cancelled, status=%s", reservationID, reservation.Status)
		return nil, ErrCannotRecordPayment
	}
	if reservation.IsPaid() {
		s.logger.Warn("RecordPayment: reservation id=%d is already paid", reservationID)
		return nil, ErrAlreadyPaid
	}

	// Списываем оплату
	if err := s.paymentClient.Charge(ctx, reservationID, reservation.TotalCharge); err != nil {
		s.logger.Error("RecordPayment: charge failed for reservation id=%d, amount=%d: %v", reservationID, reservation.TotalCharge, err)
		return nil, fmt.Errorf("%w: amount=%d: %v", ErrPaymentFailed, reservation.TotalCharge, err)
	}

	// Фиксируем оплату
	if err := s.reservationRepo.UpdatePaymentStatus(ctx, reservationID, domain.PaymentPaid); err != nil {
		s.logger.Error("RecordPayment: failed to mark reservation id=%d as paid: %v", reservationID, err)
		return nil, fmt.Errorf("%w: RecordPayment - repository error: %v", ErrInternal, err)
	}

	reservation.PaymentStatus = domain.PaymentPaid

	s.logger.Info("RecordPayment: successfully recorded payment for reservation id=%d, amount=%d", reservationID, reservation.TotalCharge)
	return models.FromDomainReservation(reservation), nil
}

// UpdateStatus обновляет статус бронирования (подтверждение, завершение)
// Отмена идёт через отдельный сценарий с расчётом сбора за отмену
// Доступно только сотрудникам
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by staff=%d",
		reservationID, req.Status, req.StaffID)

	// Проверяем права доступа сотрудника
	if err := s.checkStaffAccess(ctx, req.StaffID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Статусы отмены выставляются только сценарием отмены
	if newStatus == domain.StatusCancelledByMember || newStatus == domain.StatusCancelledByStaff {
		s.logger.Warn("UpdateStatus: cancellation status=%s is not allowed for reservation id=%d", req.Status, reservationID)
		return ErrInvalidStatus
	}

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Отменённое бронирование менять нельзя
	if reservation.IsCancelled() {
		s.logger.Warn("UpdateStatus: reservation id=%d is cancelled, status=%s", reservationID, reservation.Status)
		return ErrInvalidStatus
	}

	// Обновляем статус
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// Вспомогательные методы

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
