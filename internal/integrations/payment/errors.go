package payment

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payment client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("payment client: invalid response")

	// ErrPaymentDeclined возвращается, когда платёжный сервис отклонил операцию
	ErrPaymentDeclined = errors.New("payment client: operation declined")
)
