package quote_charge

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/pricing"
)

// validateRequest валидирует входные данные запроса
// Возвращает первую найденную ошибку
func validateRequest(req *Request) error {
	feeType := domain.EntranceFeeType(req.EntranceFeeType)
	if !feeType.IsValid() {
		return fmt.Errorf("%w: invalid entranceFeeType %q", ErrInvalidInput, req.EntranceFeeType)
	}

	if req.EntranceFee < 0 {
		return fmt.Errorf("%w: entranceFee must be non-negative", ErrInvalidInput)
	}

	if feeType == domain.EntranceFeeFree && req.EntranceFee != 0 {
		return fmt.Errorf("%w: entranceFee must be zero for a free ticket", ErrInvalidInput)
	}

	if len(req.Usages) == 0 {
		return fmt.Errorf("%w: at least one usage is required", ErrInvalidInput)
	}

	if len(req.Usages) > domain.MaxUsagesPerReservation {
		return fmt.Errorf("%w: at most %d usages per quote", ErrInvalidInput, domain.MaxUsagesPerReservation)
	}

	for i := range req.Usages {
		if err := validateUsage(i, &req.Usages[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateUsage валидирует один день использования
func validateUsage(index int, usage *UsageRequest) error {
	if usage.RoomID <= 0 {
		return fmt.Errorf("%w: usage[%d]: roomID must be positive", ErrInvalidInput, index)
	}

	if usage.Date.IsZero() {
		return fmt.Errorf("%w: usage[%d]: date is required", ErrInvalidInput, index)
	}

	// Правила сочетания слотов (первое нарушение останавливает проверку)
	selection := usage.Selection()
	if err := pricing.ValidateSelection(&selection); err != nil {
		switch {
		case errors.Is(err, pricing.ErrNoMainSlot):
			return fmt.Errorf("%w: usage[%d]", ErrNoMainSlot, index)
		case errors.Is(err, pricing.ErrOrphanMiddayExtension):
			return fmt.Errorf("%w: usage[%d]", ErrOrphanMiddayExtension, index)
		case errors.Is(err, pricing.ErrOrphanEveningExtension):
			return fmt.Errorf("%w: usage[%d]", ErrOrphanEveningExtension, index)
		default:
			return fmt.Errorf("%w: usage[%d]: %v", ErrInvalidInput, index, err)
		}
	}

	if usage.AirconHours != nil {
		if !usage.AirconRequested {
			return fmt.Errorf("%w: usage[%d]: airconHours require airconRequested", ErrInvalidInput, index)
		}
		if *usage.AirconHours <= 0 {
			return fmt.Errorf("%w: usage[%d]: airconHours must be positive", ErrInvalidInput, index)
		}
		if *usage.AirconHours > domain.MaxAirconHours {
			return fmt.Errorf("%w: usage[%d]: airconHours must be at most %v", ErrInvalidInput, index, domain.MaxAirconHours)
		}
	}

	seen := make(map[int64]struct{}, len(usage.Equipment))
	for _, line := range usage.Equipment {
		if line.EquipmentID <= 0 {
			return fmt.Errorf("%w: usage[%d]: equipmentID must be positive", ErrInvalidInput, index)
		}
		if line.Quantity < domain.MinEquipmentQuantity || line.Quantity > domain.MaxEquipmentQuantity {
			return fmt.Errorf("%w: usage[%d]: equipment quantity must be between %d and %d",
				ErrInvalidInput, index, domain.MinEquipmentQuantity, domain.MaxEquipmentQuantity)
		}
		if _, ok := seen[line.EquipmentID]; ok {
			return fmt.Errorf("%w: usage[%d]: duplicate equipment id=%d", ErrInvalidInput, index, line.EquipmentID)
		}
		seen[line.EquipmentID] = struct{}{}
	}

	return nil
}
