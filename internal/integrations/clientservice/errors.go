package clientservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиентский профиль не найден
	ErrClientNotFound = errors.New("clientservice client: client not found")

	// ErrUnauthorized возвращается при недействительном токене сессии
	ErrUnauthorized = errors.New("clientservice client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("clientservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("clientservice client: invalid response")
)
