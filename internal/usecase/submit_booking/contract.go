package submit_booking

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/integrations/bookingservice"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/clientservice"
)

// BookingServiceClient интерфейс клиента сервиса бронирований
type BookingServiceClient interface {
	CreateBooking(ctx context.Context, req *bookingservice.CreateBookingRequest, accessToken string) (*bookingservice.CreateBookingResponse, error)
	CreateGuestBooking(ctx context.Context, req *bookingservice.CreateBookingRequest) (*bookingservice.CreateBookingResponse, error)
}

// ClientServiceClient интерфейс клиента сервиса клиентов
type ClientServiceClient interface {
	ListCars(ctx context.Context, clientID int64, accessToken string) ([]clientservice.Car, error)
	CreateCar(ctx context.Context, clientID int64, req *clientservice.CreateCarRequest, accessToken string) (*clientservice.Car, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
