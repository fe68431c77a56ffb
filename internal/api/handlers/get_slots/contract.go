package get_slots

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"
)

type WizardService interface {
	LoadSlots(ctx context.Context, id string) (*models.SlotsView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
