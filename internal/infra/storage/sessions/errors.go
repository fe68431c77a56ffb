package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")

	// ErrBuildQuery возвращается при ошибке сборки SQL-запроса
	ErrBuildQuery = errors.New("sessions storage: build query error")

	// ErrExecQuery возвращается при ошибке выполнения SQL-запроса
	ErrExecQuery = errors.New("sessions storage: execute query error")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("sessions storage: scan row error")

	// ErrSerialize возвращается при ошибке (де)сериализации состояния сессии
	ErrSerialize = errors.New("sessions storage: serialize error")
)
