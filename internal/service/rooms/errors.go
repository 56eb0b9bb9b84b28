package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("room not found")

	// ErrRateTableNotFound возвращается, когда у зала нет таблицы расценок
	ErrRateTableNotFound = errors.New("rate table not found")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("member not found")

	// ErrAccessDenied возвращается, когда у участника нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
