package availability

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// CountPerSlot подсчитывает число различных бронирований, занимающих каждый блок дня
// Отменённые бронирования в rows не попадают (фильтруются на уровне хранилища),
// excludeReservationID исключает бронирование из подсчёта (для сценариев редактирования)
func CountPerSlot(rows []domain.SlotOccupancy, excludeReservationID *int64) map[domain.Slot]int {
	seen := make(map[domain.Slot]map[int64]struct{}, len(domain.AllSlots))
	for _, slot := range domain.AllSlots {
		seen[slot] = make(map[int64]struct{})
	}

	for _, row := range rows {
		if excludeReservationID != nil && row.ReservationID == *excludeReservationID {
			continue
		}
		for _, slot := range domain.AllSlots {
			if row.Holds(slot) {
				seen[slot][row.ReservationID] = struct{}{}
			}
		}
	}

	counts := make(map[domain.Slot]int, len(seen))
	for slot, ids := range seen {
		counts[slot] = len(ids)
	}
	return counts
}

// BuildReport строит отчёт о занятости всех блоков комнаты на одну дату
// Неактивная комната отображается с нулевой вместимостью: все блоки недоступны
func BuildReport(room *domain.Room, rows []domain.SlotOccupancy, excludeReservationID *int64) []domain.SlotAvailability {
	limit := roomLimit(room)
	counts := CountPerSlot(rows, excludeReservationID)

	report := make([]domain.SlotAvailability, 0, len(domain.AllSlots))
	for _, slot := range domain.AllSlots {
		occupied := counts[slot]
		report = append(report, domain.SlotAvailability{
			Slot:      slot,
			Occupied:  occupied,
			Max:       limit,
			Available: occupied < limit,
		})
	}
	return report
}

// roomLimit возвращает вместимость блока с учётом активности комнаты
// Несуществующая комната (nil) эквивалентна нулевой вместимости
func roomLimit(room *domain.Room) int {
	if room == nil || !room.IsBookable() {
		return 0
	}
	return room.ConcurrentLimit()
}
