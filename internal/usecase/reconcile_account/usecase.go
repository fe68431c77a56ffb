package reconcile_account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/authservice"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/clientservice"
	submitBooking "github.com/avdeevlv/TSP-WizardService/internal/usecase/submit_booking"
	"github.com/avdeevlv/TSP-WizardService/pkg/phonenum"
)

// UseCase use case сверки аккаунта при бронировании без входа
//
// Последовательный конвейер: нормализация телефона -> поиск аккаунта ->
// вход ИЛИ регистрация -> best-effort создание автомобиля -> бронирование.
// Каждая стадия возвращает типизированный результат или ошибку
type UseCase struct {
	authClient   AuthServiceClient
	clientClient ClientServiceClient
	submitter    BookingSubmitter
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	authClient AuthServiceClient,
	clientClient ClientServiceClient,
	submitter BookingSubmitter,
	logger Logger,
) *UseCase {
	return &UseCase{
		authClient:   authClient,
		clientClient: clientClient,
		submitter:    submitter,
		logger:       logger,
	}
}

// Lookup ищет аккаунт по телефону получателя услуги
// Телефон нормализуется к виду "+цифры" перед запросом
func (uc *UseCase) Lookup(ctx context.Context, phone string) (*domain.AccountMatch, error) {
	normalized := phonenum.Normalize(phone)
	if phonenum.DigitCount(normalized) < domain.MinPhoneDigits {
		return nil, fmt.Errorf("%w: phone is too short for lookup", ErrInvalidInput)
	}

	match, err := uc.authClient.CheckExists(ctx, normalized)
	if err != nil {
		uc.logger.Error("ReconcileAccount: existence check failed for phone=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	uc.logger.Info("ReconcileAccount: lookup phone=%s exists=%t", normalized, match.Exists)
	return match, nil
}

// RegisterAndBook регистрирует новый аккаунт и создает бронирование под ним
//
// Шаги:
//  1. регистрация с детерминированным начальным паролем из цифр телефона;
//  2. best-effort создание автомобиля из полей формы, сбой логируется
//     и НЕ прерывает создание бронирования;
//  3. бронирование по аутентифицированному пути с новым client id.
//
// При сбое шага 3 возвращается Response с заполненным Auth и ошибка
// ErrBookingAfterAuth: созданный аккаунт не откатывается
func (uc *UseCase) RegisterAndBook(ctx context.Context, req *RegisterRequest) (*Response, error) {
	recipient := req.Form.Recipient
	normalized := phonenum.Normalize(recipient.Phone)

	uc.logger.Info("ReconcileAccount: registering new account for phone=%s", normalized)

	// 1. Регистрация
	regResp, err := uc.authClient.Register(ctx, &authservice.RegisterRequest{
		FirstName: strings.TrimSpace(recipient.FirstName),
		LastName:  strings.TrimSpace(recipient.LastName),
		Phone:     normalized,
		Email:     recipient.Email,
		Password:  initialPassword(normalized),
	})
	if err != nil {
		if errors.Is(err, authservice.ErrPhoneAlreadyRegistered) {
			uc.logger.Warn("ReconcileAccount: phone=%s already registered", normalized)
			return nil, ErrAccountExists
		}
		uc.logger.Error("ReconcileAccount: registration failed for phone=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	auth := domain.AuthState{
		Authenticated: true,
		UserID:        regResp.User.ID,
		Role:          domain.Role(regResp.User.Role),
		AccessToken:   regResp.Tokens.Access,
	}
	if regResp.Client != nil {
		auth.ClientID = &regResp.Client.ID
	}

	uc.logger.Info("ReconcileAccount: registered user=%d for phone=%s", auth.UserID, normalized)

	// 2. Best-effort сохранение автомобиля в новый профиль
	carSaved := uc.tryCreateCar(ctx, &req.Form, &auth)

	// 3. Бронирование под новым аккаунтом
	booking, err := uc.submitter.ExecuteAuthenticated(ctx, &submitBooking.Request{
		Form: req.Form,
		Auth: auth,
	})
	if err != nil {
		uc.logger.Error("ReconcileAccount: booking failed after registration for user=%d: %v", auth.UserID, err)
		return &Response{Auth: auth, CarSaved: carSaved}, fmt.Errorf("%w: %v", ErrBookingAfterAuth, err)
	}

	return &Response{Auth: auth, CarSaved: carSaved, Booking: booking}, nil
}

// LoginAndBook входит в существующий аккаунт и создает бронирование под ним
//
// При сбое бронирования после успешного входа действует та же семантика,
// что и в RegisterAndBook: Auth заполнен, ошибка ErrBookingAfterAuth
func (uc *UseCase) LoginAndBook(ctx context.Context, req *LoginRequest) (*Response, error) {
	if req.User == nil {
		return nil, fmt.Errorf("%w: matched user is required", ErrInvalidInput)
	}

	normalized := phonenum.Normalize(req.User.Phone)
	uc.logger.Info("ReconcileAccount: logging in user=%d by phone=%s", req.User.ID, normalized)

	loginResp, err := uc.authClient.Login(ctx, &authservice.LoginRequest{
		Phone:    normalized,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			uc.logger.Warn("ReconcileAccount: invalid credentials for user=%d", req.User.ID)
			return nil, ErrInvalidCredentials
		}
		uc.logger.Error("ReconcileAccount: login failed for user=%d: %v", req.User.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	auth := domain.AuthState{
		Authenticated: true,
		UserID:        req.User.ID,
		ClientID:      req.User.ClientID,
		Role:          domain.RoleClient,
		AccessToken:   loginResp.Access(),
	}
	if loginResp.User != nil {
		auth.UserID = loginResp.User.ID
		auth.Role = domain.Role(loginResp.User.Role)
	}
	if loginResp.ClientID != nil {
		auth.ClientID = loginResp.ClientID
	}

	booking, err := uc.submitter.ExecuteAuthenticated(ctx, &submitBooking.Request{
		Form: req.Form,
		Auth: auth,
	})
	if err != nil {
		uc.logger.Error("ReconcileAccount: booking failed after login for user=%d: %v", auth.UserID, err)
		return &Response{Auth: auth}, fmt.Errorf("%w: %v", ErrBookingAfterAuth, err)
	}

	return &Response{Auth: auth, Booking: booking}, nil
}

// tryCreateCar best-effort создает автомобиль из полей формы
// Любой сбой проглатывается с логом: бронирование важнее карточки автомобиля
func (uc *UseCase) tryCreateCar(ctx context.Context, form *domain.BookingFormData, auth *domain.AuthState) bool {
	if !form.HasCar() || auth.ClientID == nil {
		return false
	}

	_, err := uc.clientClient.CreateCar(ctx, *auth.ClientID, &clientservice.CreateCarRequest{
		CarTypeID:    form.CarTypeID,
		Brand:        form.CarBrand,
		Model:        form.CarModel,
		LicensePlate: form.LicensePlate,
	}, auth.AccessToken)
	if err != nil {
		uc.logger.Warn("ReconcileAccount: best-effort car creation failed for client=%d: %v",
			*auth.ClientID, err)
		return false
	}

	uc.logger.Info("ReconcileAccount: car %q saved for new client=%d", form.LicensePlate, *auth.ClientID)
	return true
}

// initialPassword возвращает детерминированный начальный пароль нового аккаунта
// Пароль выводится из цифр телефона; пользователю предлагается сменить его
// при первом входе в личный кабинет
func initialPassword(normalizedPhone string) string {
	return phonenum.Digits(normalizedPhone)
}
