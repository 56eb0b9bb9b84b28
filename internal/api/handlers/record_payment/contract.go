package record_payment

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/service/reservations/models"
)

type ReservationService interface {
	RecordPayment(ctx context.Context, reservationID int64, req *models.RecordPaymentRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
