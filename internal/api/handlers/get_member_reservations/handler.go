package get_member_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/service/reservations"
	"github.com/m04kA/SMC-FacilityService/internal/service/reservations/models"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgInvalidStatus   = "некорректный статус бронирования"
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

// Handle GET /api/v1/members/{memberId}/reservations
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем memberId из URL
	vars := mux.Vars(r)
	memberIDStr := vars["memberId"]

	memberID, err := strconv.ParseInt(memberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{memberId}/reservations - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetMemberReservationsRequest{
		MemberID: memberID,
		Status:   statusPtr,
	}

	// Получаем бронирования участника
	result, err := h.service.GetMemberReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /members/{memberId}/reservations - Invalid status: member_id=%d, status=%s",
				memberID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /members/{memberId}/reservations - Failed to get reservations: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{memberId}/reservations - Reservations retrieved successfully: member_id=%d, count=%d",
		memberID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
