package reset_wizard

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"
)

type WizardService interface {
	Reset(ctx context.Context, id string) (*models.SessionView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
