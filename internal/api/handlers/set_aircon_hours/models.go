package set_aircon_hours

import (
	setAirconHours "github.com/m04kA/SMC-FacilityService/internal/usecase/set_aircon_hours"
)

// SetAirconHoursRequest HTTP request model
type SetAirconHoursRequest struct {
	Hours float64 `json:"hours"`
}

// ChargeBreakdownResponse пересчитанная разбивка стоимости дня использования
type ChargeBreakdownResponse struct {
	RoomBeforeMultiplier int64 `json:"roomBeforeMultiplier"`
	RoomAfterMultiplier  int64 `json:"roomAfterMultiplier"`
	Equipment            int64 `json:"equipment"`
	Aircon               int64 `json:"aircon"`
	Subtotal             int64 `json:"subtotal"`
}

// SetAirconHoursResponse HTTP response model
type SetAirconHoursResponse struct {
	ReservationID    int64                   `json:"reservationId"`
	UsageID          int64                   `json:"usageId"`
	AirconHours      float64                 `json:"airconHours"`
	Charge           ChargeBreakdownResponse `json:"charge"`
	ReservationTotal int64                   `json:"reservationTotal"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetAirconHoursRequest) ToUseCaseRequest(reservationID, usageID, staffID int64) *setAirconHours.Request {
	return &setAirconHours.Request{
		ReservationID: reservationID,
		UsageID:       usageID,
		StaffID:       staffID,
		Hours:         r.Hours,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *setAirconHours.Response) *SetAirconHoursResponse {
	return &SetAirconHoursResponse{
		ReservationID: resp.ReservationID,
		UsageID:       resp.UsageID,
		AirconHours:   resp.AirconHours,
		Charge: ChargeBreakdownResponse{
			RoomBeforeMultiplier: resp.Charge.RoomBeforeMultiplier,
			RoomAfterMultiplier:  resp.Charge.RoomAfterMultiplier,
			Equipment:            resp.Charge.Equipment,
			Aircon:               resp.Charge.Aircon,
			Subtotal:             resp.Charge.Subtotal,
		},
		ReservationTotal: resp.ReservationTotal,
	}
}
