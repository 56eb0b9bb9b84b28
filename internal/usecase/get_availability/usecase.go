package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/availability"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
)

// UseCase use case для получения занятости зала на дату
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	calendar        CalendarService
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	calendar CalendarService,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		calendar:        calendar,
		logger:          logger,
	}
}

// Execute выполняет use case получения занятости
// Несуществующий или неактивный зал отображается с нулевой вместимостью,
// а не ошибкой: клиент видит, что мест нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим признак выходного/праздничного дня
	weekendOrHoliday, err := uc.calendar.IsWeekendOrHoliday(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve calendar day %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to resolve calendar day: %v", ErrInternal, err)
	}

	// 3. Получаем зал (отсутствие зала не является ошибкой)
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if !errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Error("GetAvailability: failed to get room id=%d: %v", req.RoomID, err)
			return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		uc.logger.Info("GetAvailability: room id=%d not found, reporting zero capacity", req.RoomID)
		room = nil
	}

	// 4. Получаем занятость на дату
	occupancy, err := uc.reservationRepo.ListOccupancyForDate(ctx, req.RoomID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load occupancy for room=%d date=%s: %v",
			req.RoomID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to load occupancy: %v", ErrInternal, err)
	}

	// 5. Строим отчёт по блокам дня
	report := availability.BuildReport(room, occupancy, req.ExcludeReservationID)

	resp := &Response{
		RoomID:           req.RoomID,
		Date:             req.Date,
		WeekendOrHoliday: weekendOrHoliday,
		Slots:            make([]Slot, 0, len(report)),
	}
	if room != nil {
		resp.RoomName = room.Name
	}

	for _, item := range report {
		resp.MaxConcurrentReservations = item.Max
		resp.Slots = append(resp.Slots, Slot{
			Slot:      string(item.Slot),
			Occupied:  item.Occupied,
			Max:       item.Max,
			Remaining: item.Remaining(),
			Available: item.Available,
		})
	}

	uc.logger.Info("GetAvailability: room=%d date=%s, %d slots reported", req.RoomID, req.Date.Format(domain.DateFormat), len(resp.Slots))
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ExcludeReservationID != nil && *req.ExcludeReservationID <= 0 {
		return fmt.Errorf("%w: excludeReservationID must be positive", ErrInvalidInput)
	}

	return nil
}
