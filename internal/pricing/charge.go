package pricing

import (
	"math"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// ComputeCharge вычисляет полную разбивку стоимости одного дня использования
// Функция чистая и идемпотентна: одинаковые входы всегда дают одинаковую разбивку,
// поэтому её безопасно вызывать повторно (например, при изменении часов кондиционера)
//
// Порядок расчёта:
// 1. Базовая стоимость помещения по выбранным блокам
// 2. Применение коэффициента за платный вход (только к помещению, с округлением)
// 3. Оборудование и кондиционер добавляются без надбавки
func ComputeCharge(
	table *domain.RoomRateTable,
	sel *domain.UsageSelection,
	lines []domain.EquipmentLine,
	multiplier float64,
	weekendOrHoliday bool,
) domain.ChargeBreakdown {
	roomBefore := RoomBaseCharge(table, sel, weekendOrHoliday)
	roomAfter := int64(math.Round(float64(roomBefore) * multiplier))
	equipment := EquipmentCharge(lines)
	aircon := AirconCharge(table.AirconPricePerHour, sel.AirconRequested, sel.AirconHours)

	return domain.ChargeBreakdown{
		RoomBeforeMultiplier: roomBefore,
		RoomAfterMultiplier:  roomAfter,
		Equipment:            equipment,
		Aircon:               aircon,
		Subtotal:             roomAfter + equipment + aircon,
	}
}
