package models

import (
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Request модели

// UpsertHolidayRequest запрос на добавление или обновление праздничного дня
type UpsertHolidayRequest struct {
	StaffID int64     `json:"staffId"`
	Date    time.Time `json:"date"`
	Name    string    `json:"name"`
}

// ListHolidaysRequest запрос на получение праздничных дней за период
type ListHolidaysRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Response модели

// HolidayResponse ответ с данными праздничного дня
type HolidayResponse struct {
	ID   int64  `json:"id"`
	Date string `json:"date"` // "2026-01-01"
	Name string `json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HolidayListResponse ответ со списком праздничных дней
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// Методы конвертации

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}

	return &HolidayResponse{
		ID:        h.ID,
		Date:      h.Date.Format(domain.DateFormat),
		Name:      h.Name,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// FromDomainHolidayList конвертирует список domain моделей в DTO
func FromDomainHolidayList(holidays []*domain.Holiday) *HolidayListResponse {
	if holidays == nil {
		return &HolidayListResponse{
			Holidays: []HolidayResponse{},
		}
	}

	resp := &HolidayListResponse{
		Holidays: make([]HolidayResponse, len(holidays)),
	}

	for i, holiday := range holidays {
		if holidayResp := FromDomainHoliday(holiday); holidayResp != nil {
			resp.Holidays[i] = *holidayResp
		}
	}

	return resp
}
