package get_slots

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

// AvailabilityClient интерфейс клиента фида доступности
type AvailabilityClient interface {
	GetSlots(ctx context.Context, servicePointID, categoryID int64, date string, durationMinutes *int) ([]domain.RawSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
