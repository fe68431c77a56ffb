package get_slots

import (
	"fmt"
	"time"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServicePointID <= 0 {
		return fmt.Errorf("%w: servicePointID must be positive", ErrInvalidInput)
	}

	if req.CategoryID <= 0 {
		return fmt.Errorf("%w: categoryID must be positive", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	return nil
}
