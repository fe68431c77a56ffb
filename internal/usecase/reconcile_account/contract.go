package reconcile_account

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/authservice"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/clientservice"
	submitBooking "github.com/avdeevlv/TSP-WizardService/internal/usecase/submit_booking"
)

// AuthServiceClient интерфейс клиента auth-сервиса
type AuthServiceClient interface {
	CheckExists(ctx context.Context, phone string) (*domain.AccountMatch, error)
	Register(ctx context.Context, req *authservice.RegisterRequest) (*authservice.RegisterResponse, error)
	Login(ctx context.Context, req *authservice.LoginRequest) (*authservice.LoginResponse, error)
}

// ClientServiceClient интерфейс клиента сервиса клиентов
// Используется для best-effort создания автомобиля после регистрации
type ClientServiceClient interface {
	CreateCar(ctx context.Context, clientID int64, req *clientservice.CreateCarRequest, accessToken string) (*clientservice.Car, error)
}

// BookingSubmitter интерфейс отправки бронирования (аутентифицированный путь)
type BookingSubmitter interface {
	ExecuteAuthenticated(ctx context.Context, req *submitBooking.Request) (*submitBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
