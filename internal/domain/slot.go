package domain

// Slot identifies one of the bookable time blocks of a day
type Slot string

const (
	SlotMorning          Slot = "morning"
	SlotAfternoon        Slot = "afternoon"
	SlotEvening          Slot = "evening"
	SlotMiddayExtension  Slot = "midday_extension"
	SlotEveningExtension Slot = "evening_extension"
)

// IsMain returns true for the three primary blocks (morning, afternoon, evening)
func (s Slot) IsMain() bool {
	return s == SlotMorning || s == SlotAfternoon || s == SlotEvening
}

// IsExtension returns true for the bridging blocks between primary ones
func (s Slot) IsExtension() bool {
	return s == SlotMiddayExtension || s == SlotEveningExtension
}

// MainSlots перечисляет основные блоки дня в хронологическом порядке
var MainSlots = []Slot{
	SlotMorning,
	SlotAfternoon,
	SlotEvening,
}

// AllSlots перечисляет все блоки дня в хронологическом порядке
var AllSlots = []Slot{
	SlotMorning,
	SlotMiddayExtension,
	SlotAfternoon,
	SlotEveningExtension,
	SlotEvening,
}

// SlotOccupancy describes the slots one reservation holds on a room and date
type SlotOccupancy struct {
	ReservationID    int64
	Morning          bool
	Afternoon        bool
	Evening          bool
	MiddayExtension  bool
	EveningExtension bool
}

// Holds returns true if the reservation occupies the given slot
func (o *SlotOccupancy) Holds(slot Slot) bool {
	switch slot {
	case SlotMorning:
		return o.Morning
	case SlotAfternoon:
		return o.Afternoon
	case SlotEvening:
		return o.Evening
	case SlotMiddayExtension:
		return o.MiddayExtension
	case SlotEveningExtension:
		return o.EveningExtension
	}
	return false
}

// SlotAvailability represents the occupancy of a single slot of a room on a date
type SlotAvailability struct {
	Slot      Slot
	Occupied  int // Active reservations holding the slot
	Max       int // Concurrent reservation capacity of the room
	Available bool
}

// Remaining returns the number of reservations the slot can still take
func (s *SlotAvailability) Remaining() int {
	if s.Max <= s.Occupied {
		return 0
	}
	return s.Max - s.Occupied
}

// IsFull returns true if the slot has no remaining capacity
func (s *SlotAvailability) IsFull() bool {
	return s.Occupied >= s.Max
}
