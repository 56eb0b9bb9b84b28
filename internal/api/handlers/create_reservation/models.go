package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	createReservation "github.com/m04kA/SMC-FacilityService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Purpose         string         `json:"purpose"`
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

// EquipmentLineResponse строка заказанного оборудования в HTTP ответе
type EquipmentLineResponse struct {
	EquipmentID int64  `json:"equipmentId"`
	Name        string `json:"name"`
	PriceType   string `json:"priceType"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	SlotCount   int    `json:"slotCount"`
}

// UsageResponse один день использования в HTTP ответе
type UsageResponse struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"roomId"`
	RoomName string `json:"roomName"`
	Date     string `json:"date"`

	Morning          bool `json:"morning"`
	Afternoon        bool `json:"afternoon"`
	Evening          bool `json:"evening"`
	MiddayExtension  bool `json:"middayExtension"`
	EveningExtension bool `json:"eveningExtension"`

	AirconRequested bool     `json:"airconRequested"`
	AirconHours     *float64 `json:"airconHours,omitempty"`

	WeekendOrHoliday bool    `json:"weekendOrHoliday"`
	TicketMultiplier float64 `json:"ticketMultiplier"`

	Charge    ChargeBreakdownResponse `json:"charge"`
	Equipment []EquipmentLineResponse `json:"equipment"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	MemberID        int64   `json:"memberId"`
	Purpose         string  `json:"purpose"`
	EntranceFeeType string  `json:"entranceFeeType"`
	EntranceFee     int64   `json:"entranceFee"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	MemberName      *string `json:"memberName,omitempty"`
	TotalCharge     int64   `json:"totalCharge"`

	Usages []UsageResponse `json:"usages"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *CreateReservationRequest) ToUseCaseRequest(memberID int64) (*createReservation.Request, error) {
	usages := make([]createReservation.UsageRequest, 0, len(r.Usages))

	for _, u := range r.Usages {
		date, err := time.Parse(domain.DateFormat, u.Date)
		if err != nil {
			return nil, err
		}

		equipment := make([]createReservation.EquipmentRequest, 0, len(u.Equipment))
		for _, e := range u.Equipment {
			equipment = append(equipment, createReservation.EquipmentRequest{
				EquipmentID: e.EquipmentID,
				Quantity:    e.Quantity,
			})
		}

		usages = append(usages, createReservation.UsageRequest{
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

	return &createReservation.Request{
		MemberID:        memberID,
		Purpose:         r.Purpose,
		EntranceFeeType: r.EntranceFeeType,
		EntranceFee:     r.EntranceFee,
		Usages:          usages,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ID:              resp.ID,
		MemberID:        resp.MemberID,
		Purpose:         resp.Purpose,
		EntranceFeeType: resp.EntranceFeeType,
		EntranceFee:     resp.EntranceFee,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		MemberName:      resp.MemberName,
		TotalCharge:     resp.TotalCharge,
		Usages:          make([]UsageResponse, 0, len(resp.Usages)),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	for i := range resp.Usages {
		out.Usages = append(out.Usages, fromUseCaseUsage(&resp.Usages[i]))
	}

	return out
}

func fromUseCaseUsage(u *createReservation.Usage) UsageResponse {
	usage := UsageResponse{
		ID:               u.ID,
		RoomID:           u.RoomID,
		RoomName:         u.RoomName,
		Date:             u.Date.Format(domain.DateFormat),
		Morning:          u.Morning,
		Afternoon:        u.Afternoon,
		Evening:          u.Evening,
		MiddayExtension:  u.MiddayExtension,
		EveningExtension: u.EveningExtension,
		AirconRequested:  u.AirconRequested,
		AirconHours:      u.AirconHours,
		WeekendOrHoliday: u.WeekendOrHoliday,
		TicketMultiplier: u.TicketMultiplier,
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
		usage.Equipment = append(usage.Equipment, EquipmentLineResponse{
			EquipmentID: line.EquipmentID,
			Name:        line.Name,
			PriceType:   line.PriceType,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			SlotCount:   line.SlotCount,
		})
	}

	return usage
}
