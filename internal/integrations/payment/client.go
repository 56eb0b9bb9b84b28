package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	operationCharge = "charge"
	operationRefund = "refund"

	statusAccepted = "accepted"
)

// Client клиент для работы с платёжным сервисом
// При пустом baseURL работает в stub-режиме: операции логируются и считаются успешными
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр платёжного клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Charge списывает оплату за бронирование
func (c *Client) Charge(ctx context.Context, reservationID int64, amount int64) error {
	return c.execute(ctx, operationCharge, reservationID, amount)
}

// Refund возвращает средства за отменённое бронирование
func (c *Client) Refund(ctx context.Context, reservationID int64, amount int64) error {
	return c.execute(ctx, operationRefund, reservationID, amount)
}

func (c *Client) execute(ctx context.Context, operation string, reservationID int64, amount int64) error {
	// Stub-режим: платёжный сервис не подключен
	if c.baseURL == "" {
		c.log.Info("Payment stub: %s accepted for reservation_id=%d, amount=%d", operation, reservationID, amount)
		return nil
	}

	payload, err := json.Marshal(operationRequest{
		ReservationID: reservationID,
		Amount:        amount,
		Operation:     operation,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/payments", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: reservation_id=%d, amount=%d", ErrPaymentDeclined, reservationID, amount)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var result operationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if result.Status != statusAccepted {
		return fmt.Errorf("%w: status=%s, reservation_id=%d", ErrPaymentDeclined, result.Status, reservationID)
	}

	c.log.Info("Payment %s accepted: transaction_id=%s, reservation_id=%d, amount=%d", operation, result.TransactionID, reservationID, amount)
	return nil
}
