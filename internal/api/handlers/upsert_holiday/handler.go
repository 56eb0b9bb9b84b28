package upsert_holiday

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/service/calendar"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingMemberID    = "отсутствует ID участника"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные праздничного дня"
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

// Handle PUT /api/v1/holidays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем memberID из контекста (через middleware Auth)
	staffID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("PUT /holidays - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	// Декодируем body
	var req UpsertHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель сервиса (с парсингом даты)
	serviceReq, err := req.ToServiceRequest(staffID)
	if err != nil {
		h.logger.Warn("PUT /holidays - Invalid date: date=%s, error=%v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Добавляем или обновляем праздничный день (сервис сам проверит права сотрудника)
	result, err := h.service.UpsertHoliday(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrAccessDenied), errors.Is(err, calendar.ErrMemberNotFound):
			h.logger.Warn("PUT /holidays - Access denied: member_id=%d", staffID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("PUT /holidays - Invalid data: date=%s, error=%v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /holidays - Failed to upsert holiday: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /holidays - Holiday upserted successfully: date=%s, member_id=%d",
		result.Date, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
