package record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/reservations"
	"github.com/m04kA/SMC-FacilityService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgMissingMemberID      = "отсутствует ID участника"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgAlreadyPaid          = "бронирование уже оплачено"
	msgCannotRecordPayment  = "оплата невозможна для этого бронирования"
	msgPaymentDeclined      = "платёж отклонён платёжным сервисом"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/payment - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем memberID из контекста (через middleware Auth)
	staffID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/payment - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	// Списываем оплату (сервис сам проверит права сотрудника)
	result, err := h.service.RecordPayment(r.Context(), reservationID, &models.RecordPaymentRequest{
		StaffID: staffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/payment - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied), errors.Is(err, reservations.ErrMemberNotFound):
			h.logger.Warn("POST /reservations/{id}/payment - Access denied: reservation_id=%d, member_id=%d",
				reservationID, staffID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrAlreadyPaid):
			h.logger.Warn("POST /reservations/{id}/payment - Already paid: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPaid)

		case errors.Is(err, reservations.ErrCannotRecordPayment):
			h.logger.Warn("POST /reservations/{id}/payment - Cannot record payment: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgCannotRecordPayment)

		case errors.Is(err, reservations.ErrPaymentFailed):
			h.logger.Warn("POST /reservations/{id}/payment - Payment declined: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPaymentDeclined)

		default:
			h.logger.Error("POST /reservations/{id}/payment - Failed to record payment: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/payment - Payment recorded successfully: reservation_id=%d, amount=%d",
		reservationID, result.TotalCharge)
	handlers.RespondJSON(w, http.StatusOK, result)
}
