package reconcile_account

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reconcile_account: invalid input data")

	// ErrLookupFailed возвращается, когда проверка существования аккаунта недоступна
	// Управление возвращается в состояние выбора типа бронирования
	ErrLookupFailed = errors.New("reconcile_account: account lookup failed")

	// ErrAccountExists возвращается, когда регистрация обнаружила занятый телефон
	// (аккаунт появился между проверкой и регистрацией)
	ErrAccountExists = errors.New("reconcile_account: account already exists")

	// ErrRegistrationFailed возвращается при сбое регистрации
	// Учетные данные при этом не сохраняются: состояние не остается полу-аутентифицированным
	ErrRegistrationFailed = errors.New("reconcile_account: registration failed")

	// ErrInvalidCredentials возвращается при неверном пароле существующего аккаунта
	ErrInvalidCredentials = errors.New("reconcile_account: invalid credentials")

	// ErrLoginFailed возвращается при недоступности входа
	ErrLoginFailed = errors.New("reconcile_account: login failed")

	// ErrBookingAfterAuth возвращается, когда аккаунт создан или вход выполнен,
	// но создание бронирования не удалось. Учетные данные в Response при этом
	// заполнены и НЕ откатываются: пользователь может повторить отправку,
	// уже будучи аутентифицированным
	ErrBookingAfterAuth = errors.New("reconcile_account: booking failed after authentication")
)
