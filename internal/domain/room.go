package domain

import "time"

// Room represents a bookable facility room
type Room struct {
	ID          int64
	Name        string
	Description *string
	// Максимальное число одновременных бронирований на один слот (0 = значение по умолчанию)
	MaxConcurrentReservations int
	Active                    bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// ConcurrentLimit returns the per-slot reservation capacity of the room
func (r *Room) ConcurrentLimit() int {
	if r.MaxConcurrentReservations <= 0 {
		return DefaultMaxConcurrentReservations
	}
	return r.MaxConcurrentReservations
}

// IsBookable returns true if the room accepts new reservations
func (r *Room) IsBookable() bool {
	return r.Active
}

// RateSet holds the per-slot prices of a room for one day class
type RateSet struct {
	Morning          int64
	Afternoon        int64
	Evening          int64
	MiddayExtension  int64
	EveningExtension int64
}

// SlotPrice returns the price of a single slot from the set
func (s RateSet) SlotPrice(slot Slot) int64 {
	switch slot {
	case SlotMorning:
		return s.Morning
	case SlotAfternoon:
		return s.Afternoon
	case SlotEvening:
		return s.Evening
	case SlotMiddayExtension:
		return s.MiddayExtension
	case SlotEveningExtension:
		return s.EveningExtension
	}
	return 0
}

// RoomRateTable represents the pricing configuration of a room.
// Weekend is optional: when set it replaces the weekday set entirely
// on weekends and public holidays.
type RoomRateTable struct {
	RoomID             int64
	Weekday            RateSet
	Weekend            *RateSet // NULL = weekday prices apply every day
	AirconPricePerHour int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RatesFor returns the rate set effective for the given day class
func (t *RoomRateTable) RatesFor(weekendOrHoliday bool) RateSet {
	if weekendOrHoliday && t.Weekend != nil {
		return *t.Weekend
	}
	return t.Weekday
}

// HasWeekendRates returns true if the room defines a separate weekend price set
func (t *RoomRateTable) HasWeekendRates() bool {
	return t.Weekend != nil
}
