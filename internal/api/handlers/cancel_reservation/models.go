package cancel_reservation

import (
	"time"

	cancelReservation "github.com/m04kA/SMC-FacilityService/internal/usecase/cancel_reservation"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	TotalCharge     int64  `json:"totalCharge"`
	CancellationFee int64  `json:"cancellationFee"`
	RefundAmount    int64  `json:"refundAmount"`
	CancelledAt     string `json:"cancelledAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelReservationRequest) ToUseCaseRequest(reservationID, memberID int64) *cancelReservation.Request {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &cancelReservation.Request{
		ReservationID: reservationID,
		MemberID:      memberID,
		Reason:        reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ID:              resp.ID,
		Status:          resp.Status,
		TotalCharge:     resp.TotalCharge,
		CancellationFee: resp.CancellationFee,
		RefundAmount:    resp.RefundAmount,
		CancelledAt:     resp.CancelledAt.Format(time.RFC3339),
	}
}
