package memberservice

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не найден в MemberService
	ErrMemberNotFound = errors.New("member not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("memberservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("memberservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что MemberService недоступен и бронирование продолжается без данных участника
	ErrServiceDegraded = errors.New("memberservice unavailable: graceful degradation applied")
)
