package quote_charge

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	quoteCharge "github.com/m04kA/SMC-FacilityService/internal/usecase/quote_charge"
)

// QuoteChargeRequest HTTP request model
type QuoteChargeRequest struct {
	EntranceFeeType string         `json:"entranceFeeType"` // "free" | "paid"
	EntranceFee     int64          `json:"entranceFee"`
	Usages          []UsageRequest `json:"usages"`
}

// UsageRequest один день использования в HTTP запросе
type UsageRequest struct {
	RoomID int64  `json:"roomId"`
	Date   string `json:"date"` // "2026-03-14"

	Morning          bool `json:"morning"`
	Afternoon        bool `json:"afternoon"`
	Evening          bool `json:"evening"`
	MiddayExtension  bool `json:"middayExtension"`
	EveningExtension bool `json:"eveningExtension"`

	AirconRequested bool     `json:"airconRequested"`
	AirconHours     *float64 `json:"airconHours,omitempty"`

	Equipment []EquipmentRequest `json:"equipment,omitempty"`
}

// EquipmentRequest строка оборудования в HTTP запросе
type EquipmentRequest struct {
	EquipmentID int64 `json:"equipmentId"`
	Quantity    int   `json:"quantity"`
}

// ChargeBreakdownResponse разбивка стоимости одного дня использования
type ChargeBreakdownResponse struct {
	RoomBeforeMultiplier int64 `json:"roomBeforeMultiplier"`
	RoomAfterMultiplier  int64 `json:"roomAfterMultiplier"`
	Equipment            int64 `json:"equipment"`
	Aircon               int64 `json:"aircon"`
	Subtotal             int64 `json:"subtotal"`
}

// EquipmentLineResponse строка оборудования в расчёте
type EquipmentLineResponse struct {
	EquipmentID int64  `json:"equipmentId"`
	Name        string `json:"name"`
	PriceType   string `json:"priceType"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	SlotCount   int    `json:"slotCount"`
}

// UsageQuoteResponse расчёт стоимости одного дня использования
type UsageQuoteResponse struct {
	RoomID   int64  `json:"roomId"`
	RoomName string `json:"roomName"`
	Date     string `json:"date"`

	WeekendOrHoliday bool `json:"weekendOrHoliday"`

	Charge    ChargeBreakdownResponse `json:"charge"`
	Equipment []EquipmentLineResponse `json:"equipment"`
}

// QuoteChargeResponse HTTP response model
type QuoteChargeResponse struct {
	TicketMultiplier float64              `json:"ticketMultiplier"`
	TotalCharge      int64                `json:"totalCharge"`
	Usages           []UsageQuoteResponse `json:"usages"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *QuoteChargeRequest) ToUseCaseRequest() (*quoteCharge.Request, error) {
	usages := make([]quoteCharge.UsageRequest, 0, len(r.Usages))

	for _, u := range r.Usages {
		date, err := time.Parse(domain.DateFormat, u.Date)
		if err != nil {
			return nil, err
		}

		equipment := make([]quoteCharge.EquipmentRequest, 0, len(u.Equipment))
		for _, e := range u.Equipment {
			equipment = append(equipment, quoteCharge.EquipmentRequest{
				EquipmentID: e.EquipmentID,
				Quantity:    e.Quantity,
			})
		}

		usages = append(usages, quoteCharge.UsageRequest{
			RoomID:           u.RoomID,
			Date:             date,
			Morning:          u.Morning,
			Afternoon:        u.Afternoon,
			Evening:          u.Evening,
			MiddayExtension:  u.MiddayExtension,
			EveningExtension: u.EveningExtension,
			AirconRequested:  u.AirconRequested,
			AirconHours:      u.AirconHours,
			Equipment:        equipment,
		})
	}

	return &quoteCharge.Request{
		EntranceFeeType: r.EntranceFeeType,
		EntranceFee:     r.EntranceFee,
		Usages:          usages,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteCharge.Response) *QuoteChargeResponse {
	out := &QuoteChargeResponse{
		TicketMultiplier: resp.TicketMultiplier,
		TotalCharge:      resp.TotalCharge,
		Usages:           make([]UsageQuoteResponse, 0, len(resp.Usages)),
	}

	for i := range resp.Usages {
		u := &resp.Usages[i]

		quote := UsageQuoteResponse{
			RoomID:           u.RoomID,
			RoomName:         u.RoomName,
			Date:             u.Date.Format(domain.DateFormat),
			WeekendOrHoliday: u.WeekendOrHoliday,
			Charge: ChargeBreakdownResponse{
				RoomBeforeMultiplier: u.Charge.RoomBeforeMultiplier,
				RoomAfterMultiplier:  u.Charge.RoomAfterMultiplier,
				Equipment:            u.Charge.Equipment,
				Aircon:               u.Charge.Aircon,
				Subtotal:             u.Charge.Subtotal,
			},
			Equipment: make([]EquipmentLineResponse, 0, len(u.Equipment)),
		}

		for _, line := range u.Equipment {
			quote.Equipment = append(quote.Equipment, EquipmentLineResponse{
				EquipmentID: line.EquipmentID,
				Name:        line.Name,
				PriceType:   line.PriceType,
				UnitPrice:   line.UnitPrice,
				Quantity:    line.Quantity,
				SlotCount:   line.SlotCount,
			})
		}

		out.Usages = append(out.Usages, quote)
	}

	return out
}
