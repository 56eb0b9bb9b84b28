package upsert_holiday

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/calendar/models"
)

// UpsertHolidayRequest HTTP request model
type UpsertHolidayRequest struct {
	Date string `json:"date"` // "2026-01-01"
	Name string `json:"name"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом даты)
func (r *UpsertHolidayRequest) ToServiceRequest(staffID int64) (*models.UpsertHolidayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.UpsertHolidayRequest{
		StaffID: staffID,
		Date:    date,
		Name:    r.Name,
	}, nil
}
