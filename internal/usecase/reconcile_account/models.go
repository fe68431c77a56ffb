package reconcile_account

import (
	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	submitBooking "github.com/avdeevlv/TSP-WizardService/internal/usecase/submit_booking"
)

// RegisterRequest запрос ветки "создать аккаунт и бронирование"
type RegisterRequest struct {
	Form domain.BookingFormData // Полные данные формы мастера
}

// LoginRequest запрос ветки "войти в существующий аккаунт и прикрепить бронирование"
type LoginRequest struct {
	Form     domain.BookingFormData
	User     *domain.MatchedUser // Найденный по телефону аккаунт
	Password string              // Пароль, введенный пользователем в диалоге
}

// Response результат ветки сверки
//
// Auth заполняется сразу после успешной регистрации или входа. При ошибке
// ErrBookingAfterAuth ответ возвращается ВМЕСТЕ с ошибкой, чтобы вызывающий
// код закоммитил учетные данные несмотря на сбой бронирования
type Response struct {
	Auth     domain.AuthState        // Учетные данные для коммита в сессию
	CarSaved bool                    // Автомобиль сохранен в новый профиль (best-effort)
	Booking  *submitBooking.Response // Результат бронирования (nil при ErrBookingAfterAuth)
}
