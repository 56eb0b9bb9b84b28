package cancel_reservation

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	ReservationID int64  // ID бронирования
	MemberID      int64  // ID участника, выполняющего отмену
	Reason        string // Причина отмены (опционально)
}

// Response модель ответа с результатом отмены
type Response struct {
	ID     int64  // ID бронирования
	Status string // Итоговый статус (cancelled_by_member или cancelled_by_staff)

	TotalCharge     int64 // Полная стоимость бронирования
	CancellationFee int64 // Удержанный сбор за отмену
	RefundAmount    int64 // Сумма к возврату (стоимость минус сбор)

	CancelledAt time.Time // Момент отмены
}
