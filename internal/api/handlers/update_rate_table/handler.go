package update_rate_table

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/rooms"
	"github.com/m04kA/SMC-FacilityService/internal/service/rooms/models"
)

const (
	msgInvalidRoomID      = "некорректный ID зала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingMemberID    = "отсутствует ID участника"
	msgRoomNotFound       = "зал не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные расценок"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/rooms/{roomId}/rate-table
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /rooms/{id}/rate-table - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Получаем memberID из контекста (через middleware Auth)
	staffID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("PUT /rooms/{id}/rate-table - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	// Декодируем body
	var req models.UpdateRateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rooms/{id}/rate-table - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// ID сотрудника берём из заголовка аутентификации, а не из тела
	req.StaffID = staffID

	// Обновляем таблицу расценок (сервис сам проверит права сотрудника)
	result, err := h.service.UpdateRateTable(r.Context(), roomID, &req)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrAccessDenied), errors.Is(err, rooms.ErrMemberNotFound):
			h.logger.Warn("PUT /rooms/{id}/rate-table - Access denied: room_id=%d, member_id=%d",
				roomID, staffID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("PUT /rooms/{id}/rate-table - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("PUT /rooms/{id}/rate-table - Invalid data: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /rooms/{id}/rate-table - Failed to update rate table: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /rooms/{id}/rate-table - Rate table updated successfully: room_id=%d, member_id=%d",
		roomID, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
