package get_room_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/reservations"
)

const (
	msgInvalidRoomID   = "некорректный ID зала"
	msgMissingMemberID = "отсутствует ID участника"
	msgInvalidParams   = "некорректные параметры запроса"
	msgRoomNotFound    = "зал не найден"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/rooms/{roomId}/reservations
// Query params: from, to, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/reservations - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Получаем memberID из контекста (через middleware Auth)
	staffID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("GET /rooms/{id}/reservations - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	// Получаем опциональные query параметры
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	statusStr := r.URL.Query().Get("status")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(roomID, staffID, fromStr, toStr, statusStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования зала (сервис сам проверит права сотрудника)
	result, err := h.service.GetRoomReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied), errors.Is(err, reservations.ErrMemberNotFound):
			h.logger.Warn("GET /rooms/{id}/reservations - Access denied: room_id=%d, member_id=%d",
				roomID, staffID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/reservations - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/reservations - Invalid filter: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /rooms/{id}/reservations - Failed to get reservations: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/reservations - Reservations retrieved successfully: room_id=%d, count=%d",
		roomID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
