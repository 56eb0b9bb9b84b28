package remove_holiday

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/calendar"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingMemberID = "отсутствует ID участника"
	msgNotFound        = "праздничный день не найден"
	msgForbidden       = "доступ запрещен"
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

// Handle DELETE /api/v1/holidays/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем дату из URL
	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("DELETE /holidays/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем memberID из контекста (через middleware Auth)
	staffID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /holidays/{date} - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	// Удаляем праздничный день (сервис сам проверит права сотрудника)
	err = h.service.RemoveHoliday(r.Context(), staffID, date)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrHolidayNotFound):
			h.logger.Warn("DELETE /holidays/{date} - Holiday not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendar.ErrAccessDenied), errors.Is(err, calendar.ErrMemberNotFound):
			h.logger.Warn("DELETE /holidays/{date} - Access denied: date=%s, member_id=%d", dateStr, staffID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /holidays/{date} - Failed to remove holiday: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holidays/{date} - Holiday removed successfully: date=%s, member_id=%d",
		dateStr, staffID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
