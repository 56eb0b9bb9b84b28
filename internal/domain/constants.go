package domain

// Default configuration values
const (
	DefaultMaxConcurrentReservations = 1
)

// Business validation constants
const (
	MinConcurrentReservations = 1
	MaxConcurrentReservations = 100

	MinEquipmentQuantity = 1
	MaxEquipmentQuantity = 100

	MaxUsagesPerReservation = 31

	MaxAirconHours = 24.0

	MaxPurposeLength            = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слоты
// Используется для фильтрации при подсчёте занятости
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByMember,
	StatusCancelledByStaff,
}

// ActiveStatuses список статусов, занимающих слоты
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
