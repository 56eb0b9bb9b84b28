package pricing

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// Коэффициенты надбавки к стоимости помещения за платный вход на мероприятие
const (
	// MultiplierNone применяется, когда вход на мероприятие бесплатный
	MultiplierNone = 1.0
	// MultiplierPaid применяется при входной плате до PaidFeeThreshold включительно
	MultiplierPaid = 1.5
	// MultiplierPaidHigh применяется при входной плате выше PaidFeeThreshold
	MultiplierPaidHigh = 2.0
)

// PaidFeeThreshold граница входной платы между MultiplierPaid и MultiplierPaidHigh
const PaidFeeThreshold int64 = 3000

// ResolveTicketMultiplier возвращает коэффициент надбавки по типу и размеру входной платы
// Коэффициент применяется ТОЛЬКО к стоимости помещения:
// оборудование и кондиционер оплачиваются без надбавки
//
// Примеры:
// - бесплатный вход или плата 0     → 1.0
// - плата от 1 до 3000 включительно → 1.5
// - плата 3001 и выше               → 2.0
func ResolveTicketMultiplier(feeType domain.EntranceFeeType, amount int64) float64 {
	if feeType == domain.EntranceFeeFree || amount <= 0 {
		return MultiplierNone
	}
	if amount <= PaidFeeThreshold {
		return MultiplierPaid
	}
	return MultiplierPaidHigh
}
