package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	MemberID        int64          // ID участника клуба
	Purpose         string         // Цель использования
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

// EquipmentLine строка заказанного оборудования в ответе
type EquipmentLine struct {
	EquipmentID int64
	Name        string
	PriceType   string
	UnitPrice   int64
	Quantity    int
	SlotCount   int
}

// Usage модель одного дня использования в ответе
type Usage struct {
	ID       int64
	RoomID   int64
	RoomName string
	Date     time.Time

	Morning          bool
	Afternoon        bool
	Evening          bool
	MiddayExtension  bool
	EveningExtension bool

	AirconRequested bool
	AirconHours     *float64

	WeekendOrHoliday bool
	TicketMultiplier float64

	Charge    ChargeBreakdown
	Equipment []EquipmentLine
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	MemberID        int64
	Purpose         string
	EntranceFeeType string
	EntranceFee     int64
	Status          string
	PaymentStatus   string

	// Денормализованные данные участника
	MemberName *string

	TotalCharge int64

	Usages []Usage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomainReservation конвертирует domain модель в ответ use case
func fromDomainReservation(r *domain.Reservation) *Response {
	resp := &Response{
		ID:              r.ID,
		MemberID:        r.MemberID,
		Purpose:         r.Purpose,
		EntranceFeeType: string(r.EntranceFeeType),
		EntranceFee:     r.EntranceFee,
		Status:          string(r.Status),
		PaymentStatus:   string(r.PaymentStatus),
		MemberName:      r.MemberName,
		TotalCharge:     r.TotalCharge,
		Usages:          make([]Usage, 0, len(r.Usages)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	for i := range r.Usages {
		resp.Usages = append(resp.Usages, fromDomainUsage(&r.Usages[i]))
	}

	return resp
}

// fromDomainUsage конвертирует domain модель дня использования в ответ use case
func fromDomainUsage(u *domain.ReservationUsage) Usage {
	usage := Usage{
		ID:               u.ID,
		RoomID:           u.RoomID,
		RoomName:         u.RoomName,
		Date:             u.UsageDate,
		Morning:          u.Morning,
		Afternoon:        u.Afternoon,
		Evening:          u.Evening,
		MiddayExtension:  u.MiddayExtension,
		EveningExtension: u.EveningExtension,
		AirconRequested:  u.AirconRequested,
		AirconHours:      u.AirconHours,
		WeekendOrHoliday: u.WeekendOrHoliday,
		TicketMultiplier: u.TicketMultiplier,
		Charge: ChargeBreakdown{
			RoomBeforeMultiplier: u.Charge.RoomBeforeMultiplier,
			RoomAfterMultiplier:  u.Charge.RoomAfterMultiplier,
			Equipment:            u.Charge.Equipment,
			Aircon:               u.Charge.Aircon,
			Subtotal:             u.Charge.Subtotal,
		},
		Equipment: make([]EquipmentLine, 0, len(u.Equipment)),
	}

	for _, line := range u.Equipment {
		usage.Equipment = append(usage.Equipment, EquipmentLine{
			EquipmentID: line.EquipmentID,
			Name:        line.Name,
			PriceType:   string(line.PriceType),
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			SlotCount:   line.SlotCount,
		})
	}

	return usage
}
