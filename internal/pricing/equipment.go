package pricing

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// EquipmentCharge вычисляет суммарную стоимость оборудования за один день использования
// Коэффициент за платный вход к оборудованию НЕ применяется
//
// Тарифы:
// - free:     0
// - per_slot: цена × количество × число основных блоков дня
// - flat:     цена за день (количество и число блоков не учитываются)
func EquipmentCharge(lines []domain.EquipmentLine) int64 {
	var total int64
	for _, line := range lines {
		switch line.PriceType {
		case domain.EquipmentPricePerSlot:
			total += line.UnitPrice * int64(line.Quantity) * int64(line.SlotCount)
		case domain.EquipmentPriceFlat:
			total += line.UnitPrice
		case domain.EquipmentPriceFree:
			// бесплатное оборудование не участвует в расчёте
		}
	}
	return total
}
