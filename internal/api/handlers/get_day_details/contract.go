package get_day_details

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

type WizardService interface {
	GetDayDetails(ctx context.Context, id string, date string) (*domain.DayDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
