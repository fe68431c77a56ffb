package submit_booking

import "github.com/avdeevlv/TSP-WizardService/internal/domain"

// Request модель запроса на отправку бронирования
type Request struct {
	Form domain.BookingFormData // Данные формы, собранные мастером
	Auth domain.AuthState       // Контекст аутентификации (только для ExecuteAuthenticated)
}

// Response результат создания бронирования
type Response struct {
	BookingID int64  // ID созданного бронирования
	Status    string // Статус на стороне портала

	// Госномер из формы не найден среди сохраненных автомобилей аккаунта:
	// перед финальным успехом пользователю предлагается сохранить его.
	// Гостевой путь никогда не выставляет этот флаг
	NeedsSaveCar bool
}
