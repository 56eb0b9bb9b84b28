package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Request модели

// SlotRates расценки по слотам одного набора (будни или выходные)
type SlotRates struct {
	Morning          int64 `json:"morning"`
	Afternoon        int64 `json:"afternoon"`
	Evening          int64 `json:"evening"`
	MiddayExtension  int64 `json:"middayExtension"`
	EveningExtension int64 `json:"eveningExtension"`
}

// UpdateRateTableRequest запрос на обновление таблицы расценок зала
// Weekend задаётся целиком или не задаётся вовсе
type UpdateRateTableRequest struct {
	StaffID            int64      `json:"staffId"`
	Weekday            SlotRates  `json:"weekday"`
	Weekend            *SlotRates `json:"weekend,omitempty"`
	AirconPricePerHour int64      `json:"airconPricePerHour"`
}

// Validate проверяет, что все расценки неотрицательные
func (r *UpdateRateTableRequest) Validate() error {
	if err := r.Weekday.validate("weekday"); err != nil {
		return err
	}

	if r.Weekend != nil {
		if err := r.Weekend.validate("weekend"); err != nil {
			return err
		}
	}

	if r.AirconPricePerHour < 0 {
		return errors.New("airconPricePerHour: price must be non-negative")
	}

	return nil
}

func (r *SlotRates) validate(prefix string) error {
	if r.Morning < 0 || r.Afternoon < 0 || r.Evening < 0 || r.MiddayExtension < 0 || r.EveningExtension < 0 {
		return errors.New(prefix + ": prices must be non-negative")
	}

	return nil
}

// ToDomainRateTable конвертирует request в domain модель
func (r *UpdateRateTableRequest) ToDomainRateTable(roomID int64) *domain.RoomRateTable {
	table := &domain.RoomRateTable{
		RoomID:             roomID,
		Weekday:            r.Weekday.toDomain(),
		AirconPricePerHour: r.AirconPricePerHour,
	}

	if r.Weekend != nil {
		weekend := r.Weekend.toDomain()
		table.Weekend = &weekend
	}

	return table
}

func (r *SlotRates) toDomain() domain.RateSet {
	return domain.RateSet{
		Morning:          r.Morning,
		Afternoon:        r.Afternoon,
		Evening:          r.Evening,
		MiddayExtension:  r.MiddayExtension,
		EveningExtension: r.EveningExtension,
	}
}

// Response модели

// RateTableResponse ответ с таблицей расценок зала
type RateTableResponse struct {
	RoomID             int64      `json:"roomId"`
	Weekday            SlotRates  `json:"weekday"`
	Weekend            *SlotRates `json:"weekend,omitempty"`
	AirconPricePerHour int64      `json:"airconPricePerHour"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EquipmentResponse ответ с позицией каталога оборудования
type EquipmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PriceType   string `json:"priceType"`
	UnitPrice   int64  `json:"unitPrice"`
	MaxQuantity int    `json:"maxQuantity"`
}

// RoomResponse ответ с данными зала
type RoomResponse struct {
	ID                        int64   `json:"id"`
	Name                      string  `json:"name"`
	Description               *string `json:"description,omitempty"`
	MaxConcurrentReservations int     `json:"maxConcurrentReservations"`
	Active                    bool    `json:"active"`

	RateTable *RateTableResponse  `json:"rateTable,omitempty"`
	Equipment []EquipmentResponse `json:"equipment"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomListResponse ответ со списком залов
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// Методы конвертации

// FromDomainRates конвертирует набор расценок в DTO
func FromDomainRates(rates domain.RateSet) SlotRates {
	return SlotRates{
		Morning:          rates.Morning,
		Afternoon:        rates.Afternoon,
		Evening:          rates.Evening,
		MiddayExtension:  rates.MiddayExtension,
		EveningExtension: rates.EveningExtension,
	}
}

// FromDomainRateTable конвертирует domain модель таблицы расценок в DTO
func FromDomainRateTable(table *domain.RoomRateTable) *RateTableResponse {
	if table == nil {
		return nil
	}

	resp := &RateTableResponse{
		RoomID:             table.RoomID,
		Weekday:            FromDomainRates(table.Weekday),
		AirconPricePerHour: table.AirconPricePerHour,
		CreatedAt:          table.CreatedAt,
		UpdatedAt:          table.UpdatedAt,
	}

	if table.Weekend != nil {
		weekend := FromDomainRates(*table.Weekend)
		resp.Weekend = &weekend
	}

	return resp
}

// FromDomainEquipmentList конвертирует каталог оборудования в DTO
func FromDomainEquipmentList(equipment []*domain.Equipment) []EquipmentResponse {
	resp := make([]EquipmentResponse, 0, len(equipment))

	for _, item := range equipment {
		if item == nil {
			continue
		}
		resp = append(resp, EquipmentResponse{
			ID:          item.ID,
			Name:        item.Name,
			PriceType:   string(item.PriceType),
			UnitPrice:   item.UnitPrice,
			MaxQuantity: item.MaxQuantity,
		})
	}

	return resp
}

// FromDomainRoom конвертирует domain модель зала в DTO
func FromDomainRoom(room *domain.Room, table *domain.RoomRateTable, equipment []*domain.Equipment) *RoomResponse {
	if room == nil {
		return nil
	}

	return &RoomResponse{
		ID:                        room.ID,
		Name:                      room.Name,
		Description:               room.Description,
		MaxConcurrentReservations: room.ConcurrentLimit(),
		Active:                    room.Active,
		RateTable:                 FromDomainRateTable(table),
		Equipment:                 FromDomainEquipmentList(equipment),
		CreatedAt:                 room.CreatedAt,
		UpdatedAt:                 room.UpdatedAt,
	}
}
