package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetMemberReservationsRequest запрос на получение бронирований участника
type GetMemberReservationsRequest struct {
	MemberID int64   `json:"memberId"`
	Status   *string `json:"status,omitempty"`
}

// GetRoomReservationsRequest запрос на получение бронирований зала
type GetRoomReservationsRequest struct {
	StaffID         int64      `json:"staffId"`
	RoomID          int64      `json:"roomId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetRoomReservationsRequest) ToDomainFilter() (domain.RoomReservationsFilter, error) {
	filter := domain.RoomReservationsFilter{
		RoomID:          r.RoomID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// RecordPaymentRequest запрос на фиксацию оплаты бронирования
type RecordPaymentRequest struct {
	StaffID int64 `json:"staffId"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	StaffID int64  `json:"staffId"`
	Status  string `json:"status"`
}

// Response модели

// ChargeBreakdownResponse разбивка стоимости одного дня использования
type ChargeBreakdownResponse struct {
	RoomBeforeMultiplier int64 `json:"roomBeforeMultiplier"`
	RoomAfterMultiplier  int64 `json:"roomAfterMultiplier"`
	Equipment            int64 `json:"equipment"`
	Aircon               int64 `json:"aircon"`
	Subtotal             int64 `json:"subtotal"`
}

// EquipmentLineResponse строка заказанного оборудования
type EquipmentLineResponse struct {
	EquipmentID int64  `json:"equipmentId"`
	Name        string `json:"name"`
	PriceType   string `json:"priceType"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	SlotCount   int    `json:"slotCount"`
}

// UsageResponse ответ с данными одного дня использования
type UsageResponse struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"roomId"`
	RoomName string `json:"roomName"`

	UsageDate        string `json:"usageDate"` // "2026-03-14"
	Morning          bool   `json:"morning"`
	Afternoon        bool   `json:"afternoon"`
	Evening          bool   `json:"evening"`
	MiddayExtension  bool   `json:"middayExtension"`
	EveningExtension bool   `json:"eveningExtension"`

	AirconRequested bool     `json:"airconRequested"`
	AirconHours     *float64 `json:"airconHours,omitempty"`

	WeekendOrHoliday bool    `json:"weekendOrHoliday"`
	TicketMultiplier float64 `json:"ticketMultiplier"`

	Charge    ChargeBreakdownResponse `json:"charge"`
	Equipment []EquipmentLineResponse `json:"equipment"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID       int64  `json:"id"`
	MemberID int64  `json:"memberId"`
	Purpose  string `json:"purpose"`

	EntranceFeeType string `json:"entranceFeeType"`
	EntranceFee     int64  `json:"entranceFee"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	// Денормализованные данные
	MemberName *string `json:"memberName,omitempty"`

	TotalCharge     int64 `json:"totalCharge"`
	CancellationFee int64 `json:"cancellationFee"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	Usages []UsageResponse `json:"usages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainUsage конвертирует domain модель дня использования в DTO
func FromDomainUsage(u *domain.ReservationUsage) *UsageResponse {
	if u == nil {
		return nil
	}

	resp := &UsageResponse{
		ID:               u.ID,
		RoomID:           u.RoomID,
		RoomName:         u.RoomName,
		UsageDate:        u.UsageDate.Format(domain.DateFormat),
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
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	for _, line := range u.Equipment {
		resp.Equipment = append(resp.Equipment, EquipmentLineResponse{
			EquipmentID: line.EquipmentID,
			Name:        line.Name,
			PriceType:   string(line.PriceType),
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			SlotCount:   line.SlotCount,
		})
	}

	return resp
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		MemberID:           r.MemberID,
		Purpose:            r.Purpose,
		EntranceFeeType:    string(r.EntranceFeeType),
		EntranceFee:        r.EntranceFee,
		Status:             string(r.Status),
		PaymentStatus:      string(r.PaymentStatus),
		MemberName:         r.MemberName,
		TotalCharge:        r.TotalCharge,
		CancellationFee:    r.CancellationFee,
		CancellationReason: r.CancellationReason,
		Usages:             make([]UsageResponse, 0, len(r.Usages)),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	for i := range r.Usages {
		if usageResp := FromDomainUsage(&r.Usages[i]); usageResp != nil {
			resp.Usages = append(resp.Usages, *usageResp)
		}
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if reservationResp := FromDomainReservation(reservation); reservationResp != nil {
			resp.Reservations[i] = *reservationResp
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	// Валидируем статус
	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByMember,
		domain.StatusCancelledByStaff,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
