package payment

// operationRequest тело запроса на списание или возврат
type operationRequest struct {
	ReservationID int64  `json:"reservation_id"`
	Amount        int64  `json:"amount"`
	Operation     string `json:"operation"` // charge или refund
}

// operationResponse ответ платёжного сервиса
type operationResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"` // accepted или declined
}

// ErrorResponse модель ошибки от платёжного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
