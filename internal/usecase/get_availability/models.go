package get_availability

import (
	"time"
)

// Request модель запроса на получение занятости зала
type Request struct {
	RoomID int64     // ID зала
	Date   time.Time // Дата (без времени)

	// ExcludeReservationID исключает бронирование из подсчёта занятости
	// Используется на экранах редактирования, чтобы своя заявка не занимала место
	ExcludeReservationID *int64
}

// Response модель ответа с занятостью зала по блокам дня
type Response struct {
	RoomID   int64     // ID зала
	RoomName string    // Название зала (пустое, если зал не найден)
	Date     time.Time // Дата, на которую запрашивалась занятость

	WeekendOrHoliday bool // Действует ли расценка выходного дня

	MaxConcurrentReservations int // Вместимость зала (0 для неактивного или несуществующего)

	Slots []Slot // Занятость по каждому блоку дня
}

// Slot занятость одного блока дня
type Slot struct {
	Slot      string // Название блока (morning, afternoon, evening, midday_extension, evening_extension)
	Occupied  int    // Число бронирований, занимающих блок
	Max       int    // Вместимость зала
	Remaining int    // Свободных мест
	Available bool   // Есть ли свободные места
}
