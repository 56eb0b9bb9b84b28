package pricing

import "time"

// CancellationFee вычисляет неустойку за отмену одного дня использования
//
// Сравниваются только календарные даты, время суток не учитывается:
// - отмена строго до даты использования → 0
// - отмена в день использования или позже → полная стоимость дня
//
// Примеры:
// - использование 2025-12-25, отмена 2025-12-24 23:59:59 → 0
// - использование 2025-12-25, отмена 2025-12-25 08:00:00 → полная стоимость
func CancellationFee(usageDate time.Time, cancelledAt *time.Time, subtotal int64) int64 {
	if cancelledAt == nil {
		return 0
	}
	if cancelledBeforeUsageDay(*cancelledAt, usageDate) {
		return 0
	}
	return subtotal
}

// cancelledBeforeUsageDay проверяет, что календарная дата отмены строго раньше даты использования
func cancelledBeforeUsageDay(cancelledAt, usageDate time.Time) bool {
	cy, cm, cd := cancelledAt.Date()
	uy, um, ud := usageDate.Date()
	if cy != uy {
		return cy < uy
	}
	if cm != um {
		return cm < um
	}
	return cd < ud
}
