package authservice

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном пароле на входе
	ErrInvalidCredentials = errors.New("authservice client: invalid credentials")

	// ErrPhoneAlreadyRegistered возвращается, когда телефон уже занят другим аккаунтом
	ErrPhoneAlreadyRegistered = errors.New("authservice client: phone already registered")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authservice client: invalid response")
)
