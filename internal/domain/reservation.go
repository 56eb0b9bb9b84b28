package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending           ReservationStatus = "pending"
	StatusConfirmed         ReservationStatus = "confirmed"
	StatusCompleted         ReservationStatus = "completed"
	StatusCancelledByMember ReservationStatus = "cancelled_by_member"
	StatusCancelledByStaff  ReservationStatus = "cancelled_by_staff"
)

// PaymentStatus represents the payment state of a reservation
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// EntranceFeeType describes whether the event held in the room charges admission
type EntranceFeeType string

const (
	EntranceFeeFree EntranceFeeType = "free"
	EntranceFeePaid EntranceFeeType = "paid"
)

// IsValid returns true for a known entrance fee type
func (t EntranceFeeType) IsValid() bool {
	return t == EntranceFeeFree || t == EntranceFeePaid
}

// ChargeBreakdown holds the priced components of one usage day
type ChargeBreakdown struct {
	RoomBeforeMultiplier int64
	RoomAfterMultiplier  int64
	Equipment            int64
	Aircon               int64
	Subtotal             int64
}

// Reservation represents a member's reservation covering one or more usage days
type Reservation struct {
	ID              int64
	MemberID        int64
	Purpose         string
	EntranceFeeType EntranceFeeType
	EntranceFee     int64 // Размер входной платы мероприятия (0 для бесплатных)
	Status          ReservationStatus
	PaymentStatus   PaymentStatus

	// Denormalized data for history
	MemberName *string

	TotalCharge        int64
	CancellationFee    int64
	CancellationReason *string
	CancelledAt        *time.Time

	Usages []ReservationUsage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its slots
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelledByMember &&
		r.Status != StatusCancelledByStaff
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByMember || r.Status == StatusCancelledByStaff
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsPaid returns true if the reservation has been paid for
func (r *Reservation) IsPaid() bool {
	return r.PaymentStatus == PaymentPaid
}

// RefundDue returns the amount to return after cancellation fees are withheld
func (r *Reservation) RefundDue() int64 {
	refund := r.TotalCharge - r.CancellationFee
	if refund < 0 {
		return 0
	}
	return refund
}

// ReservationUsage represents one usage day of a reservation: the room,
// the selected slots and the charges computed for them.
type ReservationUsage struct {
	ID            int64
	ReservationID int64
	RoomID        int64
	RoomName      string // Denormalized for history
	UsageDate     time.Time

	Morning          bool
	Afternoon        bool
	Evening          bool
	MiddayExtension  bool
	EveningExtension bool

	AirconRequested bool
	AirconHours     *float64

	// Pricing context captured at reservation time, kept for recomputation
	WeekendOrHoliday bool
	TicketMultiplier float64

	Charge    ChargeBreakdown
	Equipment []EquipmentLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Selection returns the slot selection of the usage day
func (u *ReservationUsage) Selection() UsageSelection {
	return UsageSelection{
		RoomID:           u.RoomID,
		UsageDate:        u.UsageDate,
		Morning:          u.Morning,
		Afternoon:        u.Afternoon,
		Evening:          u.Evening,
		MiddayExtension:  u.MiddayExtension,
		EveningExtension: u.EveningExtension,
		AirconRequested:  u.AirconRequested,
		AirconHours:      u.AirconHours,
	}
}

// RoomReservationsFilter фильтр для получения бронирований комнаты
type RoomReservationsFilter struct {
	RoomID          int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time         // Конец периода (опционально, если nil - без ограничения)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые бронирования
}
