package submit_booking

import (
	"context"
	"fmt"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/clientservice"
)

// UseCase use case отправки бронирования (гостевой и аутентифицированный пути)
type UseCase struct {
	bookingClient BookingServiceClient
	clientClient  ClientServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingClient BookingServiceClient,
	clientClient ClientServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingClient: bookingClient,
		clientClient:  clientClient,
		logger:        logger,
	}
}

// ExecuteGuest отправляет гостевое бронирование
// Гостям не предлагаются действия с профилем: профиля у них нет
func (uc *UseCase) ExecuteGuest(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: guest path, point=%v, date=%s, time=%s",
		req.Form.ServicePointID, req.Form.BookingDate, req.Form.StartTime)

	if err := validateForm(&req.Form); err != nil {
		uc.logger.Warn("SubmitBooking: guest validation failed: %v", err)
		return nil, err
	}

	created, err := uc.bookingClient.CreateGuestBooking(ctx, buildRequest(&req.Form))
	if err != nil {
		uc.logger.Error("SubmitBooking: guest creation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	uc.logger.Info("SubmitBooking: guest booking created id=%d", created.ID)

	return &Response{
		BookingID: created.ID,
		Status:    created.Status,
	}, nil
}

// ExecuteAuthenticated отправляет бронирование под сессией пользователя
//
// После успеха проверяет, сохранен ли указанный в форме автомобиль в профиле
// (сравнение госномеров без пробелов и без учета регистра); если нет,
// выставляет NeedsSaveCar, чтобы мастер предложил сохранить его.
// Сбой проверки списка автомобилей не отменяет успех бронирования
func (uc *UseCase) ExecuteAuthenticated(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: authenticated path, user=%d, point=%v, date=%s, time=%s",
		req.Auth.UserID, req.Form.ServicePointID, req.Form.BookingDate, req.Form.StartTime)

	if err := validateForm(&req.Form); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed for user=%d: %v", req.Auth.UserID, err)
		return nil, err
	}

	created, err := uc.bookingClient.CreateBooking(ctx, buildRequest(&req.Form), req.Auth.AccessToken)
	if err != nil {
		uc.logger.Error("SubmitBooking: creation failed for user=%d: %v", req.Auth.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	uc.logger.Info("SubmitBooking: booking created id=%d for user=%d", created.ID, req.Auth.UserID)

	return &Response{
		BookingID:    created.ID,
		Status:       created.Status,
		NeedsSaveCar: uc.needsSaveCar(ctx, req),
	}, nil
}

// SaveCar сохраняет автомобиль из формы в профиль клиента
// Вызывается после подтверждения пользователем в диалоге addCar
func (uc *UseCase) SaveCar(ctx context.Context, req *Request) error {
	if req.Auth.ClientID == nil {
		return fmt.Errorf("%w: auth state has no client id", ErrInvalidInput)
	}

	carReq := &clientservice.CreateCarRequest{
		CarTypeID:    req.Form.CarTypeID,
		Brand:        req.Form.CarBrand,
		Model:        req.Form.CarModel,
		LicensePlate: req.Form.LicensePlate,
	}

	if _, err := uc.clientClient.CreateCar(ctx, *req.Auth.ClientID, carReq, req.Auth.AccessToken); err != nil {
		uc.logger.Error("SubmitBooking: failed to save car to profile for client=%d: %v",
			*req.Auth.ClientID, err)
		return fmt.Errorf("%w: failed to save car: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitBooking: car %q saved to profile for client=%d",
		req.Form.LicensePlate, *req.Auth.ClientID)
	return nil
}

// needsSaveCar проверяет, отсутствует ли госномер из формы среди сохраненных
// автомобилей аккаунта. Любой сбой проверки трактуется как "предлагать не надо"
func (uc *UseCase) needsSaveCar(ctx context.Context, req *Request) bool {
	if req.Form.LicensePlate == "" || req.Auth.ClientID == nil {
		return false
	}

	cars, err := uc.clientClient.ListCars(ctx, *req.Auth.ClientID, req.Auth.AccessToken)
	if err != nil {
		uc.logger.Warn("SubmitBooking: failed to list cars for client=%d, skipping save-car offer: %v",
			*req.Auth.ClientID, err)
		return false
	}

	wanted := domain.NormalizedPlate(req.Form.LicensePlate)
	for _, car := range cars {
		if domain.NormalizedPlate(car.LicensePlate) == wanted {
			return false
		}
	}

	return true
}
