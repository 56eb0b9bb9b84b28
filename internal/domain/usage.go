package domain

import "time"

// UsageSelection describes one requested day of room usage: the date,
// the selected slots and the air conditioning request.
type UsageSelection struct {
	RoomID           int64
	UsageDate        time.Time
	Morning          bool
	Afternoon        bool
	Evening          bool
	MiddayExtension  bool
	EveningExtension bool
	AirconRequested  bool
	AirconHours      *float64 // Фактические часы работы кондиционера (заполняется персоналом после использования)
}

// UsesSlot returns true if the given slot is selected
func (u *UsageSelection) UsesSlot(slot Slot) bool {
	switch slot {
	case SlotMorning:
		return u.Morning
	case SlotAfternoon:
		return u.Afternoon
	case SlotEvening:
		return u.Evening
	case SlotMiddayExtension:
		return u.MiddayExtension
	case SlotEveningExtension:
		return u.EveningExtension
	}
	return false
}

// HasMainSlot returns true if at least one primary block is selected
func (u *UsageSelection) HasMainSlot() bool {
	return u.Morning || u.Afternoon || u.Evening
}

// MainSlotCount returns the number of selected primary blocks
func (u *UsageSelection) MainSlotCount() int {
	count := 0
	if u.Morning {
		count++
	}
	if u.Afternoon {
		count++
	}
	if u.Evening {
		count++
	}
	return count
}

// SelectedSlots returns the selected slots in chronological order
func (u *UsageSelection) SelectedSlots() []Slot {
	slots := make([]Slot, 0, len(AllSlots))
	for _, s := range AllSlots {
		if u.UsesSlot(s) {
			slots = append(slots, s)
		}
	}
	return slots
}
