package set_aircon_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	setAirconHours "github.com/m04kA/SMC-FacilityService/internal/usecase/set_aircon_hours"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidUsageID       = "некорректный ID дня использования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingMemberID      = "отсутствует ID участника"
	msgForbidden            = "доступ запрещен"
	msgUsageNotFound        = "день использования не найден"
	msgReservationCancelled = "бронирование отменено"
	msgAirconNotRequested   = "кондиционер не был заказан при бронировании"
	msgInvalidData          = "некорректные часы кондиционера"
)

type Handler struct {
	useCase SetAirconHoursUseCase
	logger  Logger
}

func NewHandler(useCase SetAirconHoursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/usages/{usageId}/aircon
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId и usageId из URL
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	usageID, err := strconv.ParseInt(vars["usageId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Invalid usage ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUsageID)
		return
	}

	// Получаем memberID из контекста (через middleware Auth)
	staffID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	// Декодируем body
	var req SetAirconHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case (он сам проверит права сотрудника)
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID, usageID, staffID))
	if err != nil {
		switch {
		case errors.Is(err, setAirconHours.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Access denied: usage_id=%d, member_id=%d",
				usageID, staffID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, setAirconHours.ErrUsageNotFound):
			h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Usage not found: usage_id=%d", usageID)
			handlers.RespondNotFound(w, msgUsageNotFound)

		case errors.Is(err, setAirconHours.ErrReservationCancelled):
			h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Reservation cancelled: reservation_id=%d",
				reservationID)
			handlers.RespondBadRequest(w, msgReservationCancelled)

		case errors.Is(err, setAirconHours.ErrAirconNotRequested):
			h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Aircon not requested: usage_id=%d", usageID)
			handlers.RespondBadRequest(w, msgAirconNotRequested)

		case errors.Is(err, setAirconHours.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/usages/{usageId}/aircon - Invalid input: usage_id=%d, error=%v",
				usageID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /reservations/{id}/usages/{usageId}/aircon - Failed to set aircon hours: usage_id=%d, error=%v",
				usageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /reservations/{id}/usages/{usageId}/aircon - Aircon hours updated: usage_id=%d, hours=%.2f, total=%d",
		usageID, response.AirconHours, response.ReservationTotal)
	handlers.RespondJSON(w, http.StatusOK, response)
}
