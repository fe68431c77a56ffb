package bookingservice

import (
	"errors"
	"fmt"
)

var (
	// ErrServicePointNotFound возвращается, когда сервисная точка не найдена
	ErrServicePointNotFound = errors.New("bookingservice client: service point not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingservice client: invalid response")
)

// APIError ошибка уровня API с сообщением сервера
// Сообщение показывается пользователю дословно, когда оно есть
type APIError struct {
	StatusCode int
	Message    string
}

// Error реализует интерфейс error
func (e *APIError) Error() string {
	return fmt.Sprintf("bookingservice client: api error (status=%d): %s", e.StatusCode, e.Message)
}
