package availability

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// Decision результат проверки возможности размещения заявки на дату
type Decision struct {
	Available         bool
	RemainingCapacity int           // Минимальный остаток мест по запрошенным блокам
	FullSlots         []domain.Slot // Запрошенные блоки без свободных мест
}

// CheckRequest проверяет, что ВСЕ запрошенные блоки имеют свободные места
// Частичное размещение не допускается: нехватка мест хотя бы в одном блоке
// отклоняет заявку целиком
//
// RemainingCapacity считается как минимум по запрошенным блокам: именно самый
// загруженный из них ограничивает, сколько ещё таких же заявок поместится
func CheckRequest(
	room *domain.Room,
	sel *domain.UsageSelection,
	rows []domain.SlotOccupancy,
	excludeReservationID *int64,
) Decision {
	limit := roomLimit(room)
	counts := CountPerSlot(rows, excludeReservationID)

	decision := Decision{
		Available:         true,
		RemainingCapacity: limit,
	}

	for _, slot := range sel.SelectedSlots() {
		remaining := limit - counts[slot]
		if remaining < 0 {
			remaining = 0
		}
		if remaining == 0 {
			decision.Available = false
			decision.FullSlots = append(decision.FullSlots, slot)
		}
		if remaining < decision.RemainingCapacity {
			decision.RemainingCapacity = remaining
		}
	}

	return decision
}
