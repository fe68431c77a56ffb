package domain

// Dialog модальный диалог мастера
// В каждый момент времени видим ровно один вариант (tagged union),
// независимые булевы флаги видимости не используются
type Dialog string

const (
	DialogNone         Dialog = "none"
	DialogTypeChoice   Dialog = "typeChoice"   // выбор: бронирование с аккаунтом или без
	DialogExistingUser Dialog = "existingUser" // найден существующий аккаунт по телефону
	DialogAddCar       Dialog = "addCar"       // предложение сохранить автомобиль в профиль
	DialogSuccess      Dialog = "success"      // бронирование создано
)

// WizardState состояние мастера бронирования
// Владеет им исключительно WizardController: шаги запрашивают переходы
// через его операции и не меняют ActiveStepIndex/VisibleDialog напрямую
type WizardState struct {
	ActiveStepIndex int             `json:"active_step_index"`
	FormData        BookingFormData `json:"form_data"`
	IsSubmitting    bool            `json:"is_submitting"`
	VisibleDialog   Dialog          `json:"visible_dialog"`
	Done            bool            `json:"done"`

	// Сообщение последней ошибки отправки; состояние формы при этом сохраняется
	SubmitError *string `json:"submit_error,omitempty"`

	// ID созданного бронирования, заполняется в терминальном состоянии
	BookingID *int64 `json:"booking_id,omitempty"`
}

// ActiveStep возвращает идентификатор активного шага
func (s *WizardState) ActiveStep() Step {
	return StepAt(s.ActiveStepIndex)
}

// AtReview проверяет, что мастер находится на финальном шаге подтверждения
func (s *WizardState) AtReview() bool {
	return s.ActiveStepIndex == ReviewStepIndex()
}

// MatchedUser данные пользователя, найденного по номеру телефона
type MatchedUser struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	ClientID  *int64  `json:"client_id,omitempty"`
}

// AccountMatch результат поиска аккаунта по телефону
// Транзиентный: живет только до разрешения диалога сверки и нигде не сохраняется
type AccountMatch struct {
	Exists bool         `json:"exists"`
	User   *MatchedUser `json:"user,omitempty"`
}

// AuthState состояние аутентификации в рамках сессии мастера
// Читается контроллером и сверкой аккаунтов; меняется только через
// явный commit учетных данных после успешного входа или регистрации
type AuthState struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"user_id,omitempty"`
	ClientID      *int64 `json:"client_id,omitempty"`
	Role          Role   `json:"role,omitempty"`
	AccessToken   string `json:"access_token,omitempty"`
}

// IsServiceUser проверяет, что текущий пользователь имеет сервисную роль
func (a *AuthState) IsServiceUser() bool {
	return a.Authenticated && a.Role.IsServiceRole()
}
