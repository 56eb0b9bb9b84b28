package set_aircon_hours

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("set_aircon_hours: invalid input")

	// ErrAccessDenied возвращается, когда участник не является сотрудником
	ErrAccessDenied = errors.New("set_aircon_hours: access denied")

	// ErrUsageNotFound возвращается, когда день использования не найден
	ErrUsageNotFound = errors.New("set_aircon_hours: usage not found")

	// ErrReservationCancelled возвращается при попытке изменить отменённое бронирование
	ErrReservationCancelled = errors.New("set_aircon_hours: reservation is cancelled")

	// ErrAirconNotRequested возвращается, когда кондиционер не был заказан при бронировании
	ErrAirconNotRequested = errors.New("set_aircon_hours: aircon was not requested")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("set_aircon_hours: internal error")
)
