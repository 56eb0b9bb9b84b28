package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FacilityService/internal/availability"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
	memberClient "github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/internal/pricing"
	"github.com/m04kA/SMC-FacilityService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	calendar        CalendarService
	memberClient    MemberServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	calendar CalendarService,
	memberClient MemberServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		calendar:        calendar,
		memberClient:    memberClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки за вместимость зала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: member=%d, usages=%d", req.MemberID, len(req.Usages))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем даты использования
	now := uc.timeProvider.Now()
	if err := validateDates(req.Usages, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем участника с graceful degradation
	// При недоступности MemberService бронирование создаётся без имени участника
	var memberName *string
	member, err := uc.memberClient.GetMemberWithGracefulDegradation(ctx, req.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, memberClient.ErrMemberNotFound):
			uc.logger.Warn("CreateReservation: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		case errors.Is(err, memberClient.ErrServiceDegraded):
			uc.logger.Warn("CreateReservation: member service degraded, continuing without member name for member=%d", req.MemberID)
		default:
			uc.logger.Error("CreateReservation: failed to get member id=%d: %v", req.MemberID, err)
			return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
		}
	}
	if member != nil {
		if !member.Active {
			uc.logger.Warn("CreateReservation: member id=%d is not active", req.MemberID)
			return nil, ErrMemberInactive
		}
		memberName = &member.Name
	}

	// 4. Резолвим множитель входного билета
	multiplier := pricing.ResolveTicketMultiplier(domain.EntranceFeeType(req.EntranceFeeType), req.EntranceFee)

	// 5. Резолвим признак выходного/праздничного дня для каждой даты
	weekendFlags := make([]bool, len(req.Usages))
	for i := range req.Usages {
		flag, err := uc.calendar.IsWeekendOrHoliday(ctx, req.Usages[i].Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to resolve calendar day %s: %v",
				req.Usages[i].Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to resolve calendar day: %v", ErrInternal, err)
		}
		weekendFlags[i] = flag
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		rooms := make(map[int64]*domain.Room)
		tables := make(map[int64]*domain.RoomRateTable)

		usages := make([]domain.ReservationUsage, 0, len(req.Usages))
		var totalCharge int64

		for i := range req.Usages {
			usageReq := &req.Usages[i]
			selection := usageReq.Selection()

			// 6.1. Получаем зал и таблицу расценок (с кешированием в рамках запроса)
			room, table, err := uc.loadRoomWithRates(txCtx, rooms, tables, usageReq.RoomID)
			if err != nil {
				return err
			}

			// 6.2. Проверяем заказанное оборудование по каталогу зала
			lines, err := uc.buildEquipmentLines(txCtx, usageReq, selection.MainSlotCount())
			if err != nil {
				return err
			}

			// 6.3. Пересчитываем занятость с блокировкой (FOR UPDATE)
			occupancy, err := uc.reservationRepo.ListOccupancyForDate(txCtx, usageReq.RoomID, usageReq.Date)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to load occupancy for room=%d date=%s: %v",
					usageReq.RoomID, usageReq.Date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to load occupancy: %v", ErrInternal, err)
			}

			// 6.4. Проверяем доступность всех запрошенных слотов
			decision := availability.CheckRequest(room, &selection, occupancy, nil)
			if !decision.Available {
				uc.logger.Warn("CreateReservation: slots %v are full for room=%d date=%s",
					decision.FullSlots, usageReq.RoomID, usageReq.Date.Format(domain.DateFormat))
				return fmt.Errorf("%w: room=%d date=%s", ErrSlotNotAvailable, usageReq.RoomID, usageReq.Date.Format(domain.DateFormat))
			}

			// 6.5. Считаем стоимость дня использования
			breakdown := pricing.ComputeCharge(table, &selection, lines, multiplier, weekendFlags[i])
			totalCharge += breakdown.Subtotal

			usages = append(usages, domain.ReservationUsage{
				RoomID:           usageReq.RoomID,
				RoomName:         room.Name,
				UsageDate:        usageReq.Date,
				Morning:          usageReq.Morning,
				Afternoon:        usageReq.Afternoon,
				Evening:          usageReq.Evening,
				MiddayExtension:  usageReq.MiddayExtension,
				EveningExtension: usageReq.EveningExtension,
				AirconRequested:  usageReq.AirconRequested,
				AirconHours:      usageReq.AirconHours,
				WeekendOrHoliday: weekendFlags[i],
				TicketMultiplier: multiplier,
				Charge:           breakdown,
				Equipment:        lines,
			})
		}

		// 6.6. Сохраняем бронирование с денормализацией данных участника
		reservation := &domain.Reservation{
			MemberID:        req.MemberID,
			Purpose:         strings.TrimSpace(req.Purpose),
			EntranceFeeType: domain.EntranceFeeType(req.EntranceFeeType),
			EntranceFee:     req.EntranceFee,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentUnpaid,
			MemberName:      memberName,
			TotalCharge:     totalCharge,
			Usages:          usages,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации означает, что параллельное бронирование заняло слот
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateReservation: serialization conflict for member=%d, reporting slot conflict", req.MemberID)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, total=%d", result.ID, result.TotalCharge)

	// Конвертируем в response
	return fromDomainReservation(result), nil
}

// loadRoomWithRates получает зал и его таблицу расценок с кешированием по roomID
func (uc *UseCase) loadRoomWithRates(
	ctx context.Context,
	rooms map[int64]*domain.Room,
	tables map[int64]*domain.RoomRateTable,
	roomID int64,
) (*domain.Room, *domain.RoomRateTable, error) {
	room, ok := rooms[roomID]
	if !ok {
		loaded, err := uc.roomRepo.GetByID(ctx, roomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateReservation: room id=%d not found", roomID)
				return nil, nil, fmt.Errorf("%w: room=%d", ErrRoomNotFound, roomID)
			}
			uc.logger.Error("CreateReservation: failed to get room id=%d: %v", roomID, err)
			return nil, nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		room = loaded
		rooms[roomID] = room
	}

	if !room.IsBookable() {
		uc.logger.Warn("CreateReservation: room id=%d is not bookable", roomID)
		return nil, nil, fmt.Errorf("%w: room=%d", ErrRoomNotBookable, roomID)
	}

	table, ok := tables[roomID]
	if !ok {
		loaded, err := uc.roomRepo.GetRateTable(ctx, roomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRateTableNotFound) {
				uc.logger.Warn("CreateReservation: room id=%d has no rate table", roomID)
				return nil, nil, fmt.Errorf("%w: room=%d", ErrRateTableNotFound, roomID)
			}
			uc.logger.Error("CreateReservation: failed to get rate table for room id=%d: %v", roomID, err)
			return nil, nil, fmt.Errorf("%w: failed to get rate table: %v", ErrInternal, err)
		}
		table = loaded
		tables[roomID] = table
	}

	return room, table, nil
}

// buildEquipmentLines проверяет заказ по каталогу зала и строит строки оборудования
func (uc *UseCase) buildEquipmentLines(ctx context.Context, usageReq *UsageRequest, slotCount int) ([]domain.EquipmentLine, error) {
	if len(usageReq.Equipment) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(usageReq.Equipment))
	for _, line := range usageReq.Equipment {
		ids = append(ids, line.EquipmentID)
	}

	catalog, err := uc.roomRepo.GetEquipmentByIDs(ctx, usageReq.RoomID, ids)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to load equipment for room=%d: %v", usageReq.RoomID, err)
		return nil, fmt.Errorf("%w: failed to load equipment: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Equipment, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	lines := make([]domain.EquipmentLine, 0, len(usageReq.Equipment))
	for _, reqLine := range usageReq.Equipment {
		item, ok := byID[reqLine.EquipmentID]
		if !ok {
			uc.logger.Warn("CreateReservation: equipment id=%d not found in room=%d", reqLine.EquipmentID, usageReq.RoomID)
			return nil, fmt.Errorf("%w: equipment=%d room=%d", ErrEquipmentNotFound, reqLine.EquipmentID, usageReq.RoomID)
		}
		if !item.IsOrderable() {
			uc.logger.Warn("CreateReservation: equipment id=%d is not orderable", reqLine.EquipmentID)
			return nil, fmt.Errorf("%w: equipment=%d", ErrEquipmentNotOrderable, reqLine.EquipmentID)
		}
		if reqLine.Quantity > item.MaxQuantity {
			uc.logger.Warn("CreateReservation: equipment id=%d quantity %d exceeds max %d",
				reqLine.EquipmentID, reqLine.Quantity, item.MaxQuantity)
			return nil, fmt.Errorf("%w: equipment=%d max=%d", ErrEquipmentQuantityExceeded, reqLine.EquipmentID, item.MaxQuantity)
		}

		lines = append(lines, domain.EquipmentLine{
			EquipmentID: item.ID,
			Name:        item.Name,
			PriceType:   item.PriceType,
			UnitPrice:   item.UnitPrice,
			Quantity:    reqLine.Quantity,
			SlotCount:   slotCount,
		})
	}

	return lines, nil
}
