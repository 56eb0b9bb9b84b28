package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-FacilityService/internal/usecase/get_availability"
)

const (
	msgInvalidRoomID  = "некорректный ID зала"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate    = "отсутствует параметр date"
	msgInvalidExclude = "некорректный параметр excludeReservation"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: date (обязательный), excludeReservation (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Парсим обязательный параметр date
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{id}/availability - Missing date parameter: room_id=%d", roomID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid date: room_id=%d, date=%s", roomID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Парсим опциональный параметр excludeReservation
	var excludeReservationID *int64
	if excludeStr := r.URL.Query().Get("excludeReservation"); excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/availability - Invalid excludeReservation: room_id=%d, value=%s",
				roomID, excludeStr)
			handlers.RespondBadRequest(w, msgInvalidExclude)
			return
		}
		excludeReservationID = &excludeID
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		RoomID:               roomID,
		Date:                 date,
		ExcludeReservationID: excludeReservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid input: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to get availability: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /rooms/{id}/availability - Availability retrieved successfully: room_id=%d, date=%s",
		roomID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, response)
}
