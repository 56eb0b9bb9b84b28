package set_aircon_hours

// Request представляет запрос на установку фактических часов кондиционера
type Request struct {
	ReservationID int64
	UsageID       int64
	StaffID       int64
	Hours         float64
}

// Response представляет результат с пересчитанной стоимостью
type Response struct {
	ReservationID    int64
	UsageID          int64
	AirconHours      float64
	Charge           ChargeBreakdown
	ReservationTotal int64
}

// ChargeBreakdown пересчитанная разбивка стоимости дня использования
type ChargeBreakdown struct {
	RoomBeforeMultiplier int64
	RoomAfterMultiplier  int64
	Equipment            int64
	Aircon               int64
	Subtotal             int64
}
