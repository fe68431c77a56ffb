package create_session

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"
)

type WizardService interface {
	CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
