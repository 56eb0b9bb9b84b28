package quote_charge

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	quoteCharge "github.com/m04kA/SMC-FacilityService/internal/usecase/quote_charge"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidData           = "некорректные данные расчёта"
	msgNoMainSlot            = "нужно выбрать хотя бы один основной блок дня"
	msgOrphanMidday          = "продление между утром и днём требует утреннего или дневного блока"
	msgOrphanEvening         = "продление между днём и вечером требует дневного или вечернего блока"
	msgRoomNotFound          = "зал не найден"
	msgRoomNotBookable       = "зал недоступен для бронирования"
	msgNoRateTable           = "для зала не настроены расценки"
	msgEquipmentNotFound     = "оборудование не найдено"
	msgEquipmentNotOrderable = "оборудование недоступно для заказа"
	msgEquipmentQuantity     = "недопустимое количество оборудования"
)

type Handler struct {
	useCase QuoteChargeUseCase
	logger  Logger
}

func NewHandler(useCase QuoteChargeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
// Публичный расчёт стоимости без создания бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteChargeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteCharge.ErrRoomNotFound):
			h.logger.Warn("POST /quotes - Room not found: %v", err)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, quoteCharge.ErrRoomNotBookable):
			h.logger.Warn("POST /quotes - Room not bookable: %v", err)
			handlers.RespondBadRequest(w, msgRoomNotBookable)

		case errors.Is(err, quoteCharge.ErrRateTableNotFound):
			h.logger.Warn("POST /quotes - Room has no rate table: %v", err)
			handlers.RespondBadRequest(w, msgNoRateTable)

		case errors.Is(err, quoteCharge.ErrEquipmentNotFound):
			h.logger.Warn("POST /quotes - Equipment not found: %v", err)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, quoteCharge.ErrEquipmentNotOrderable):
			h.logger.Warn("POST /quotes - Equipment not orderable: %v", err)
			handlers.RespondBadRequest(w, msgEquipmentNotOrderable)

		case errors.Is(err, quoteCharge.ErrEquipmentQuantityExceeded):
			h.logger.Warn("POST /quotes - Equipment quantity exceeded: %v", err)
			handlers.RespondBadRequest(w, msgEquipmentQuantity)

		case errors.Is(err, quoteCharge.ErrNoMainSlot):
			h.logger.Warn("POST /quotes - No main slot selected: %v", err)
			handlers.RespondBadRequest(w, msgNoMainSlot)

		case errors.Is(err, quoteCharge.ErrOrphanMiddayExtension):
			h.logger.Warn("POST /quotes - Orphan midday extension: %v", err)
			handlers.RespondBadRequest(w, msgOrphanMidday)

		case errors.Is(err, quoteCharge.ErrOrphanEveningExtension):
			h.logger.Warn("POST /quotes - Orphan evening extension: %v", err)
			handlers.RespondBadRequest(w, msgOrphanEvening)

		case errors.Is(err, quoteCharge.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /quotes - Failed to compute quote: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /quotes - Quote computed successfully: usages=%d, total=%d",
		len(response.Usages), response.TotalCharge)
	handlers.RespondJSON(w, http.StatusOK, response)
}
