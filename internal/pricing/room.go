package pricing

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// RoomBaseCharge вычисляет базовую стоимость помещения за один день использования
// (до применения коэффициента за платный вход)
//
// Правила:
// - основные блоки (утро, день, вечер) суммируются по выбранному тарифу
// - дневная вставка бесплатна ТОЛЬКО при выбранных утре И дне, иначе оплачивается
// - вечерняя вставка бесплатна ТОЛЬКО при выбранных дне И вечере, иначе оплачивается
// - тариф выходного дня (если задан) полностью заменяет будничный в выходные и праздники
//
// Примеры:
// - утро + день + дневная вставка → утро + день (вставка бесплатна)
// - утро + дневная вставка        → утро + вставка (соседний блок только один)
func RoomBaseCharge(table *domain.RoomRateTable, sel *domain.UsageSelection, weekendOrHoliday bool) int64 {
	rates := table.RatesFor(weekendOrHoliday)

	var total int64
	if sel.Morning {
		total += rates.Morning
	}
	if sel.Afternoon {
		total += rates.Afternoon
	}
	if sel.Evening {
		total += rates.Evening
	}

	if sel.MiddayExtension && !(sel.Morning && sel.Afternoon) {
		total += rates.MiddayExtension
	}
	if sel.EveningExtension && !(sel.Afternoon && sel.Evening) {
		total += rates.EveningExtension
	}

	return total
}
