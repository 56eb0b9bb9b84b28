package get_availability

import (
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-FacilityService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomID   int64  `json:"roomId"`
	RoomName string `json:"roomName,omitempty"`
	Date     string `json:"date"`

	WeekendOrHoliday bool `json:"weekendOrHoliday"`

	MaxConcurrentReservations int `json:"maxConcurrentReservations"`

	Slots []SlotResponse `json:"slots"`
}

// SlotResponse занятость одного блока дня
type SlotResponse struct {
	Slot      string `json:"slot"`
	Occupied  int    `json:"occupied"`
	Max       int    `json:"max"`
	Remaining int    `json:"remaining"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		RoomID:                    resp.RoomID,
		RoomName:                  resp.RoomName,
		Date:                      resp.Date.Format(domain.DateFormat),
		WeekendOrHoliday:          resp.WeekendOrHoliday,
		MaxConcurrentReservations: resp.MaxConcurrentReservations,
		Slots:                     make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Slot:      s.Slot,
			Occupied:  s.Occupied,
			Max:       s.Max,
			Remaining: s.Remaining,
			Available: s.Available,
		})
	}

	return out
}
