package quote_charge

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
	"github.com/m04kA/SMC-FacilityService/internal/pricing"
)

// UseCase use case расчёта стоимости без создания бронирования
// Страница симуляции: тот же путь валидации и тарификации, что и при бронировании,
// но без проверки занятости и без записи в БД
type UseCase struct {
	roomRepo RoomRepository
	calendar CalendarService
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	calendar CalendarService,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo: roomRepo,
		calendar: calendar,
		logger:   logger,
	}
}

// Execute выполняет расчёт стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteCharge: feeType=%s, fee=%d, usages=%d", req.EntranceFeeType, req.EntranceFee, len(req.Usages))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteCharge: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим множитель входного билета
	multiplier := pricing.ResolveTicketMultiplier(domain.EntranceFeeType(req.EntranceFeeType), req.EntranceFee)

	resp := &Response{
		TicketMultiplier: multiplier,
		Usages:           make([]UsageQuote, 0, len(req.Usages)),
	}

	rooms := make(map[int64]*domain.Room)
	tables := make(map[int64]*domain.RoomRateTable)

	// 3. Считаем стоимость каждого дня использования
	for i := range req.Usages {
		usageReq := &req.Usages[i]
		selection := usageReq.Selection()

		// 3.1. Получаем зал и таблицу расценок (с кешированием в рамках запроса)
		room, table, err := uc.loadRoomWithRates(ctx, rooms, tables, usageReq.RoomID)
		if err != nil {
			return nil, err
		}

		// 3.2. Резолвим признак выходного/праздничного дня
		weekendOrHoliday, err := uc.calendar.IsWeekendOrHoliday(ctx, usageReq.Date)
		if err != nil {
			uc.logger.Error("QuoteCharge: failed to resolve calendar day %s: %v",
				usageReq.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to resolve calendar day: %v", ErrInternal, err)
		}

		// 3.3. Проверяем заказанное оборудование по каталогу зала
		lines, err := uc.buildEquipmentLines(ctx, usageReq, selection.MainSlotCount())
		if err != nil {
			return nil, err
		}

		// 3.4. Считаем стоимость дня использования
		breakdown := pricing.ComputeCharge(table, &selection, lines, multiplier, weekendOrHoliday)
		resp.TotalCharge += breakdown.Subtotal

		quote := UsageQuote{
			RoomID:           usageReq.RoomID,
			RoomName:         room.Name,
			Date:             usageReq.Date,
			WeekendOrHoliday: weekendOrHoliday,
			Charge: ChargeBreakdown{
				RoomBeforeMultiplier: breakdown.RoomBeforeMultiplier,
				RoomAfterMultiplier:  breakdown.RoomAfterMultiplier,
				Equipment:            breakdown.Equipment,
				Aircon:               breakdown.Aircon,
				Subtotal:             breakdown.Subtotal,
			},
			Equipment: make([]EquipmentLine, 0, len(lines)),
		}

		for _, line := range lines {
			quote.Equipment = append(quote.Equipment, EquipmentLine{
				EquipmentID: line.EquipmentID,
				Name:        line.Name,
				PriceType:   string(line.PriceType),
				UnitPrice:   line.UnitPrice,
				Quantity:    line.Quantity,
				SlotCount:   line.SlotCount,
			})
		}

		resp.Usages = append(resp.Usages, quote)
	}

	uc.logger.Info("QuoteCharge: computed total=%d for %d usages", resp.TotalCharge, len(resp.Usages))
	return resp, nil
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
				uc.logger.Warn("QuoteCharge: room id=%d not found", roomID)
				return nil, nil, fmt.Errorf("%w: room=%d", ErrRoomNotFound, roomID)
			}
			uc.logger.Error("QuoteCharge: failed to get room id=%d: %v", roomID, err)
			return nil, nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		room = loaded
		rooms[roomID] = room
	}

	if !room.IsBookable() {
		uc.logger.Warn("QuoteCharge: room id=%d is not bookable", roomID)
		return nil, nil, fmt.Errorf("%w: room=%d", ErrRoomNotBookable, roomID)
	}

	table, ok := tables[roomID]
	if !ok {
		loaded, err := uc.roomRepo.GetRateTable(ctx, roomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRateTableNotFound) {
				uc.logger.Warn("QuoteCharge: room id=%d has no rate table", roomID)
				return nil, nil, fmt.Errorf("%w: room=%d", ErrRateTableNotFound, roomID)
			}
			uc.logger.Error("QuoteCharge: failed to get rate table for room id=%d: %v", roomID, err)
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
		uc.logger.Error("QuoteCharge: failed to load equipment for room=%d: %v", usageReq.RoomID, err)
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
			uc.logger.Warn("QuoteCharge: equipment id=%d not found in room=%d", reqLine.EquipmentID, usageReq.RoomID)
			return nil, fmt.Errorf("%w: equipment=%d room=%d", ErrEquipmentNotFound, reqLine.EquipmentID, usageReq.RoomID)
		}
		if !item.IsOrderable() {
			uc.logger.Warn("QuoteCharge: equipment id=%d is not orderable", reqLine.EquipmentID)
			return nil, fmt.Errorf("%w: equipment=%d", ErrEquipmentNotOrderable, reqLine.EquipmentID)
		}
		if reqLine.Quantity > item.MaxQuantity {
			uc.logger.Warn("QuoteCharge: equipment id=%d quantity %d exceeds max %d",
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
