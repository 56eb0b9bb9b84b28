package create_reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/pricing"
)

// validateRequest валидирует входные данные запроса
// Возвращает первую найденную ошибку
func validateRequest(req *Request) error {
	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Purpose) == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}

	if len(req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose must be at most %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

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
		return fmt.Errorf("%w: at most %d usages per reservation", ErrInvalidInput, domain.MaxUsagesPerReservation)
	}

	// Один зал нельзя заявить дважды на одну дату в рамках одного бронирования
	seen := make(map[string]struct{}, len(req.Usages))
	for i := range req.Usages {
		usage := &req.Usages[i]

		if err := validateUsage(i, usage); err != nil {
			return err
		}

		key := fmt.Sprintf("%d/%s", usage.RoomID, usage.Date.Format(domain.DateFormat))
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate usage for room %d on %s", ErrInvalidInput, usage.RoomID, usage.Date.Format(domain.DateFormat))
		}
		seen[key] = struct{}{}
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

// validateDates проверяет, что даты использования не в прошлом
func validateDates(usages []UsageRequest, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := range usages {
		date := usages[i].Date
		dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		if dateOnly.Before(today) {
			return fmt.Errorf("%w: usage[%d]: %s", ErrInvalidDate, i, date.Format(domain.DateFormat))
		}
	}

	return nil
}
