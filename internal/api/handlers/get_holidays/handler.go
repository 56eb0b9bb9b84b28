package get_holidays

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/calendar"
	"github.com/m04kA/SMC-FacilityService/internal/service/calendar/models"
)

const (
	msgMissingRange  = "параметры from и to обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/holidays
// Query params: from, to (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /holidays - Missing range parameters: from=%s, to=%s", fromStr, toStr)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /holidays - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /holidays - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем праздничные дни за период
	result, err := h.service.ListHolidays(r.Context(), &models.ListHolidaysRequest{
		From: from,
		To:   to,
	})
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("GET /holidays - Invalid range: from=%s, to=%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /holidays - Failed to list holidays: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /holidays - Holidays retrieved successfully: from=%s, to=%s, count=%d",
		fromStr, toStr, len(result.Holidays))
	handlers.RespondJSON(w, http.StatusOK, result.Holidays)
}
