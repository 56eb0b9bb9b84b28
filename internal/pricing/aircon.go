package pricing

import "math"

// AirconCharge вычисляет стоимость кондиционирования за один день использования
// Коэффициент за платный вход к кондиционеру НЕ применяется
//
// Часы заполняются персоналом по фактическому использованию, поэтому на момент
// бронирования обычно отсутствуют: без запроса кондиционера или без часов сумма равна 0
func AirconCharge(pricePerHour int64, requested bool, hours *float64) int64 {
	if !requested || hours == nil || *hours <= 0 {
		return 0
	}
	return int64(math.Round(*hours * float64(pricePerHour)))
}
