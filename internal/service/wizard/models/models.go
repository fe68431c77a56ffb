package models

import "github.com/avdeevlv/TSP-WizardService/internal/domain"

// CreateSessionRequest запрос на создание сессии мастера
type CreateSessionRequest struct {
	Auth domain.AuthState // Контекст аутентификации из Authorization header

	// Частично заполненная форма из входящей навигации
	// (например, переход с карточки сервисной точки)
	Prefill *domain.BookingFormData
}

// RecipientPatch частичное обновление контактов получателя услуги
type RecipientPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// SavedCarPatch выбор сохраненного автомобиля клиента
// Заполняет поля автомобиля одним действием; при наличии car_type_id
// мастер автоматически перематывается к шагу подтверждения
type SavedCarPatch struct {
	CarTypeID    *int64  `json:"car_type_id,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	LicensePlate string  `json:"license_plate"`
}

// FormPatch частичное обновление формы активным шагом
// nil-поле означает "не менять"
type FormPatch struct {
	ServiceCategoryID *int64 `json:"service_category_id,omitempty"`
	CityID            *int64 `json:"city_id,omitempty"`
	ServicePointID    *int64 `json:"service_point_id,omitempty"`

	BookingDate *string `json:"booking_date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`

	Recipient *RecipientPatch `json:"service_recipient,omitempty"`

	CarTypeID    *int64  `json:"car_type_id,omitempty"`
	CarBrand     *string `json:"car_brand,omitempty"`
	CarModel     *string `json:"car_model,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty"`

	SavedCar *SavedCarPatch `json:"saved_car,omitempty"`

	Services *[]domain.ServiceLine `json:"services,omitempty"`
	Notes    *string               `json:"notes,omitempty"`
}

// NavigateAction действие навигации по шагам
type NavigateAction string

const (
	ActionNext NavigateAction = "next"
	ActionBack NavigateAction = "back"
	ActionJump NavigateAction = "jump"
)

// NavigateRequest запрос навигации
type NavigateRequest struct {
	Action NavigateAction
	Index  int // Целевой индекс, только для jump
}

// DialogAction действие в открытом модальном диалоге
type DialogAction string

const (
	// typeChoice
	DialogActionWithAccount    DialogAction = "create-with-account"
	DialogActionWithoutAccount DialogAction = "create-without-account"

	// existingUser
	DialogActionLogin         DialogAction = "login"
	DialogActionContinueGuest DialogAction = "continue-as-guest"

	// addCar
	DialogActionSaveCar DialogAction = "save-car"
	DialogActionSkipCar DialogAction = "skip-car"
)

// DialogRequest запрос разрешения открытого диалога
type DialogRequest struct {
	Action   DialogAction
	Password string // Только для login
}

// StepView состояние одного шага для UI
type StepView struct {
	ID       domain.Step `json:"id"`
	Index    int         `json:"index"`
	Complete bool        `json:"complete"`
}

// SessionView состояние сессии мастера для UI
type SessionView struct {
	SessionID       string                 `json:"session_id"`
	ActiveStepIndex int                    `json:"active_step_index"`
	ActiveStep      domain.Step            `json:"active_step"`
	Steps           []StepView             `json:"steps"`
	FormData        domain.BookingFormData `json:"form_data"`
	IsSubmitting    bool                   `json:"is_submitting"`
	VisibleDialog   domain.Dialog          `json:"visible_dialog"`
	Done            bool                   `json:"done"`
	SubmitError     *string                `json:"submit_error,omitempty"`
	BookingID       *int64                 `json:"booking_id,omitempty"`

	Authenticated bool `json:"authenticated"`
	IsServiceUser bool `json:"is_service_user"`

	// Транзиентная подсказка сверки: открытый диалог existingUser берет
	// данные найденного аккаунта отсюда
	AccountHint *domain.AccountMatch `json:"account_hint,omitempty"`
}

// SlotsView слоты для шага выбора даты и времени
type SlotsView struct {
	Date     string                 `json:"date"`
	Slots    []domain.ProcessedSlot `json:"slots"`
	Degraded bool                   `json:"degraded"`

	// Выбор формы изменился, пока шла загрузка: результат отброшен
	Stale bool `json:"stale"`
}

// FromSession собирает представление сессии для UI
// stepComplete содержит заполненность шагов в порядке domain.StepOrder
func FromSession(session *domain.Session, stepComplete []bool) *SessionView {
	steps := make([]StepView, len(domain.StepOrder))
	for i, step := range domain.StepOrder {
		steps[i] = StepView{
			ID:       step,
			Index:    i,
			Complete: stepComplete[i],
		}
	}

	return &SessionView{
		SessionID:       session.ID,
		ActiveStepIndex: session.State.ActiveStepIndex,
		ActiveStep:      session.State.ActiveStep(),
		Steps:           steps,
		FormData:        session.State.FormData,
		IsSubmitting:    session.State.IsSubmitting,
		VisibleDialog:   session.State.VisibleDialog,
		Done:            session.State.Done,
		SubmitError:     session.State.SubmitError,
		BookingID:       session.State.BookingID,
		Authenticated:   session.Auth.Authenticated,
		IsServiceUser:   session.Auth.IsServiceUser(),
		AccountHint:     session.AccountHint,
	}
}
