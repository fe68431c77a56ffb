package get_session

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"
)

type WizardService interface {
	GetSession(ctx context.Context, id string) (*models.SessionView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
