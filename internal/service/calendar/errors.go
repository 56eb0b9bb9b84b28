package calendar

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда праздничный день не найден
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("member not found")

	// ErrAccessDenied возвращается, когда у участника нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
