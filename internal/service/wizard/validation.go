package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/pkg/phonenum"
)

// Валидатор email из go-playground: шаг client-info использует стандартный
// паттерн адреса вместо самодельной регулярки
var emailValidator = validator.New()

// StepComplete проверяет, что шаг полностью заполнен
//
// Предикаты чистые над BookingFormData: валидность всегда выводится заново
// из данных формы, скрытых флагов "шаг пройден" нет. Редактирование ранних
// полей ретроактивно инвалидирует более поздние шаги
func StepComplete(step domain.Step, form *domain.BookingFormData) bool {
	switch step {
	case domain.StepCategorySelection:
		return form.ServiceCategoryID != nil && *form.ServiceCategoryID > 0

	case domain.StepCityServicePoint:
		return form.CityID != nil && form.ServicePointID != nil

	case domain.StepDateTime:
		return strings.TrimSpace(form.BookingDate) != "" && strings.TrimSpace(form.StartTime) != ""

	case domain.StepClientInfo:
		return recipientComplete(&form.Recipient)

	case domain.StepCarType:
		return form.CarTypeID != nil && strings.TrimSpace(form.LicensePlate) != ""

	case domain.StepReview:
		// Финальный шаг ничего не добавляет сверх требований предыдущих
		return true

	default:
		return false
	}
}

// recipientComplete проверяет контактные данные получателя услуги
func recipientComplete(r *domain.ServiceRecipient) bool {
	// Имена кириллические: длина считается в рунах, не в байтах
	if utf8.RuneCountInString(strings.TrimSpace(r.FirstName)) < domain.MinNameLength {
		return false
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.LastName)) < domain.MinNameLength {
		return false
	}

	digits := phonenum.DigitCount(r.Phone)
	if digits < domain.MinPhoneDigits || digits > domain.MaxPhoneDigits {
		return false
	}

	// Email опционален; заполненный должен быть корректным адресом
	if r.Email != nil && strings.TrimSpace(*r.Email) != "" {
		if err := emailValidator.Var(*r.Email, "email"); err != nil {
			return false
		}
	}

	return true
}

// StepCompleteness возвращает заполненность каждого шага в порядке StepOrder
func StepCompleteness(form *domain.BookingFormData) []bool {
	result := make([]bool, domain.StepCount())
	for i, step := range domain.StepOrder {
		result[i] = StepComplete(step, form)
	}
	return result
}

// FirstIncompleteStep возвращает индекс первого незаполненного шага
// Если заполнены все, возвращает индекс шага review
func FirstIncompleteStep(form *domain.BookingFormData) int {
	for i, step := range domain.StepOrder {
		if !StepComplete(step, form) {
			return i
		}
	}
	return domain.ReviewStepIndex()
}
