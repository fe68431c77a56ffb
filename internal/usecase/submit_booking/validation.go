package submit_booking

import (
	"fmt"
	"strings"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

// validateForm проверяет, что форма содержит все, что требуют пройденные шаги
// Пошаговую валидацию выполняет мастер; здесь только страховка от отправки
// формы, собранной в обход шагов
func validateForm(form *domain.BookingFormData) error {
	if form.ServiceCategoryID == nil || *form.ServiceCategoryID <= 0 {
		return fmt.Errorf("%w: service category is required", ErrInvalidInput)
	}
	if form.ServicePointID == nil {
		return fmt.Errorf("%w: service point is required", ErrInvalidInput)
	}
	if strings.TrimSpace(form.BookingDate) == "" || strings.TrimSpace(form.StartTime) == "" {
		return fmt.Errorf("%w: booking date and start time are required", ErrInvalidInput)
	}
	if strings.TrimSpace(form.Recipient.FirstName) == "" || strings.TrimSpace(form.Recipient.LastName) == "" {
		return fmt.Errorf("%w: service recipient name is required", ErrInvalidInput)
	}
	if !form.HasCar() {
		return fmt.Errorf("%w: car type and license plate are required", ErrInvalidInput)
	}
	return nil
}
