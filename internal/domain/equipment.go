package domain

import "time"

// EquipmentPriceType defines how a piece of equipment is charged
type EquipmentPriceType string

const (
	EquipmentPriceFree    EquipmentPriceType = "free"
	EquipmentPricePerSlot EquipmentPriceType = "per_slot"
	EquipmentPriceFlat    EquipmentPriceType = "flat"
)

// IsValid returns true for a known price type
func (t EquipmentPriceType) IsValid() bool {
	return t == EquipmentPriceFree || t == EquipmentPricePerSlot || t == EquipmentPriceFlat
}

// Equipment represents a catalog item attached to a room
type Equipment struct {
	ID          int64
	RoomID      int64
	Name        string
	PriceType   EquipmentPriceType
	UnitPrice   int64
	MaxQuantity int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOrderable returns true if the equipment can be added to new reservations
func (e *Equipment) IsOrderable() bool {
	return e.Active
}

// EquipmentLine represents one selected equipment item within a usage day.
// Pricing fields are denormalized from the catalog at reservation time.
type EquipmentLine struct {
	EquipmentID int64
	Name        string
	PriceType   EquipmentPriceType
	UnitPrice   int64
	Quantity    int
	SlotCount   int // Число основных блоков дня использования (для тарифа per_slot)
}
