package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("room not found")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("member not found")

	// ErrAccessDenied возвращается, когда у участника нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrAlreadyPaid возвращается при повторной попытке оплатить бронирование
	ErrAlreadyPaid = errors.New("reservation is already paid")

	// ErrCannotRecordPayment возвращается, когда оплата невозможна по статусу бронирования
	ErrCannotRecordPayment = errors.New("payment cannot be recorded for this reservation")

	// ErrPaymentFailed возвращается, когда платёжный сервис отклонил списание
	ErrPaymentFailed = errors.New("payment failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
