package quote_charge

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Request модель запроса на расчёт стоимости без бронирования
type Request struct {
	EntranceFeeType string         // Тип входного билета ("free" или "paid")
	EntranceFee     int64          // Стоимость входного билета
	Usages          []UsageRequest // Дни использования (минимум один)
}

// UsageRequest модель одного дня использования в запросе
type UsageRequest struct {
	RoomID int64     // ID зала
	Date   time.Time // Дата использования (без времени)

	Morning          bool // Утренний слот
	Afternoon        bool // Дневной слот
	Evening          bool // Вечерний слот
	MiddayExtension  bool // Продление между утром и днём
	EveningExtension bool // Продление между днём и вечером

	AirconRequested bool     // Запрошено ли кондиционирование
	AirconHours     *float64 // Плановые часы кондиционирования (опционально)

	Equipment []EquipmentRequest // Заказанное оборудование
}

// EquipmentRequest модель строки оборудования в запросе
type EquipmentRequest struct {
	EquipmentID int64 // ID позиции каталога
	Quantity    int   // Количество единиц
}

// Selection конвертирует запрос дня использования в domain выборку слотов
func (u *UsageRequest) Selection() domain.UsageSelection {
	return domain.UsageSelection{
		RoomID:           u.RoomID,
		UsageDate:        u.Date,
		Morning:          u.Morning,
		Afternoon:        u.Afternoon,
		Evening:          u.Evening,
		MiddayExtension:  u.MiddayExtension,
		EveningExtension: u.EveningExtension,
		AirconRequested:  u.AirconRequested,
		AirconHours:      u.AirconHours,
	}
}

// ChargeBreakdown разбивка стоимости одного дня использования
type ChargeBreakdown struct {
	RoomBeforeMultiplier int64 // Стоимость зала до множителя
	RoomAfterMultiplier  int64 // Стоимость зала после множителя
	Equipment            int64 // Стоимость оборудования
	Aircon               int64 // Стоимость кондиционирования
	Subtotal             int64 // Итог по дню
}

// EquipmentLine строка оборудования в расчёте
type EquipmentLine struct {
	EquipmentID int64
	Name        string
	PriceType   string
	UnitPrice   int64
	Quantity    int
	SlotCount   int
}

// UsageQuote расчёт стоимости одного дня использования
type UsageQuote struct {
	RoomID   int64
	RoomName string
	Date     time.Time

	WeekendOrHoliday bool

	Charge    ChargeBreakdown
	Equipment []EquipmentLine
}

// Response модель ответа с расчётом стоимости
type Response struct {
	TicketMultiplier float64
	TotalCharge      int64
	Usages           []UsageQuote
}
