package get_rooms

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/rooms
// Query params: includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Парсим includeInactive если указан
	includeInactive := false
	if includeInactiveStr := r.URL.Query().Get("includeInactive"); includeInactiveStr != "" {
		parsed, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			h.logger.Warn("GET /rooms - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		includeInactive = parsed
	}

	// Получаем список залов с расценками и каталогом оборудования
	result, err := h.service.ListRooms(r.Context(), includeInactive)
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Rooms retrieved successfully: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result.Rooms)
}
