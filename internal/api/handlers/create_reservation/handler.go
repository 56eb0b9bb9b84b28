package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-FacilityService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingMemberID       = "отсутствует ID участника"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidData           = "некорректные данные бронирования"
	msgNoMainSlot            = "нужно выбрать хотя бы один основной блок дня"
	msgOrphanMidday          = "продление между утром и днём требует утреннего или дневного блока"
	msgOrphanEvening         = "продление между днём и вечером требует дневного или вечернего блока"
	msgPastDate              = "дата использования уже прошла"
	msgMemberNotFound        = "участник не найден"
	msgMemberInactive        = "участник не активен"
	msgRoomNotFound          = "зал не найден"
	msgRoomNotBookable       = "зал недоступен для бронирования"
	msgNoRateTable           = "для зала не настроены расценки"
	msgEquipmentNotFound     = "оборудование не найдено"
	msgEquipmentNotOrderable = "оборудование недоступно для заказа"
	msgEquipmentQuantity     = "недопустимое количество оборудования"
	msgSlotNotAvailable      = "выбранные блоки дня уже заняты"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем memberID из контекста (через middleware Auth)
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(memberID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: member_id=%d", memberID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrMemberNotFound):
			h.logger.Warn("POST /reservations - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createReservation.ErrMemberInactive):
			h.logger.Warn("POST /reservations - Member inactive: member_id=%d", memberID)
			handlers.RespondForbidden(w, msgMemberInactive)

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createReservation.ErrRoomNotBookable):
			h.logger.Warn("POST /reservations - Room not bookable: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgRoomNotBookable)

		case errors.Is(err, createReservation.ErrRateTableNotFound):
			h.logger.Warn("POST /reservations - Room has no rate table: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgNoRateTable)

		case errors.Is(err, createReservation.ErrEquipmentNotFound):
			h.logger.Warn("POST /reservations - Equipment not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, createReservation.ErrEquipmentNotOrderable):
			h.logger.Warn("POST /reservations - Equipment not orderable: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgEquipmentNotOrderable)

		case errors.Is(err, createReservation.ErrEquipmentQuantityExceeded):
			h.logger.Warn("POST /reservations - Equipment quantity exceeded: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgEquipmentQuantity)

		case errors.Is(err, createReservation.ErrNoMainSlot):
			h.logger.Warn("POST /reservations - No main slot selected: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgNoMainSlot)

		case errors.Is(err, createReservation.ErrOrphanMiddayExtension):
			h.logger.Warn("POST /reservations - Orphan midday extension: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgOrphanMidday)

		case errors.Is(err, createReservation.ErrOrphanEveningExtension):
			h.logger.Warn("POST /reservations - Orphan evening extension: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgOrphanEvening)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Usage date in the past: member_id=%d", memberID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, member_id=%d, total=%d",
		result.ID, memberID, result.TotalCharge)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
