package pricing

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// ValidateSelection проверяет структурную корректность выбора блоков дня
// Возвращает ПЕРВОЕ нарушенное правило, дальнейшие проверки не выполняются
//
// Правила в порядке проверки:
// 1. Выбран хотя бы один основной блок (утро, день или вечер)
// 2. Дневная вставка требует утра или дня
// 3. Вечерняя вставка требует дня или вечера
//
// Проверка обязательна перед расчётом стоимости для данных, пришедших извне
func ValidateSelection(sel *domain.UsageSelection) error {
	if !sel.HasMainSlot() {
		return ErrNoMainSlot
	}
	if sel.MiddayExtension && !sel.Morning && !sel.Afternoon {
		return ErrOrphanMiddayExtension
	}
	if sel.EveningExtension && !sel.Afternoon && !sel.Evening {
		return ErrOrphanEveningExtension
	}
	return nil
}
