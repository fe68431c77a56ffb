package reconcile_account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/authservice"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/clientservice"
	submitBooking "github.com/avdeevlv/TSP-WizardService/internal/usecase/submit_booking"
	"github.com/avdeevlv/TSP-WizardService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAuthClient struct {
	existsResp  *domain.AccountMatch
	existsErr   error
	existsPhone string

	registerResp *authservice.RegisterResponse
	registerErr  error
	registerReq  *authservice.RegisterRequest

	loginResp *authservice.LoginResponse
	loginErr  error
	loginReq  *authservice.LoginRequest
}

func (f *fakeAuthClient) CheckExists(ctx context.Context, phone string) (*domain.AccountMatch, error) {
	f.existsPhone = phone
	return f.existsResp, f.existsErr
}

func (f *fakeAuthClient) Register(ctx context.Context, req *authservice.RegisterRequest) (*authservice.RegisterResponse, error) {
	f.registerReq = req
	return f.registerResp, f.registerErr
}

func (f *fakeAuthClient) Login(ctx context.Context, req *authservice.LoginRequest) (*authservice.LoginResponse, error) {
	f.loginReq = req
	return f.loginResp, f.loginErr
}

type fakeClientClient struct {
	car       *clientservice.Car
	createErr error
	calls     int
}

func (f *fakeClientClient) CreateCar(ctx context.Context, clientID int64, req *clientservice.CreateCarRequest, accessToken string) (*clientservice.Car, error) {
	f.calls++
	return f.car, f.createErr
}

type fakeSubmitter struct {
	resp  *submitBooking.Response
	err   error
	calls int
	last  *submitBooking.Request
}

func (f *fakeSubmitter) ExecuteAuthenticated(ctx context.Context, req *submitBooking.Request) (*submitBooking.Response, error) {
	f.calls++
	f.last = req
	return f.resp, f.err
}

func bookingForm() domain.BookingFormData {
	return domain.BookingFormData{
		ServiceCategoryID: ptr.Ptr(int64(1)),
		CityID:            ptr.Ptr(int64(2)),
		ServicePointID:    ptr.Ptr(int64(3)),
		BookingDate:       "2025-11-20",
		StartTime:         "10:30",
		Recipient: domain.ServiceRecipient{
			FirstName: "Иван",
			LastName:  "Петров",
			Phone:     "+7 (912) 345-67-89",
		},
		CarTypeID:    ptr.Ptr(int64(4)),
		LicensePlate: "А123БВ777",
	}
}

func TestLookup_NormalizesPhoneBeforeRequest(t *testing.T) {
	auth := &fakeAuthClient{existsResp: &domain.AccountMatch{Exists: true}}
	uc := NewUseCase(auth, &fakeClientClient{}, &fakeSubmitter{}, nopLogger{})

	match, err := uc.Lookup(context.Background(), "+7 (912) 345-67-89")

	require.NoError(t, err)
	assert.True(t, match.Exists)
	assert.Equal(t, "+79123456789", auth.existsPhone)
}

func TestLookup_RejectsShortPhone(t *testing.T) {
	uc := NewUseCase(&fakeAuthClient{}, &fakeClientClient{}, &fakeSubmitter{}, nopLogger{})

	_, err := uc.Lookup(context.Background(), "12345")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLookup_WrapsTransportFailure(t *testing.T) {
	auth := &fakeAuthClient{existsErr: assert.AnError}
	uc := NewUseCase(auth, &fakeClientClient{}, &fakeSubmitter{}, nopLogger{})

	_, err := uc.Lookup(context.Background(), "+79123456789")

	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestRegisterAndBook_HappyPath(t *testing.T) {
	auth := &fakeAuthClient{
		registerResp: &authservice.RegisterResponse{
			User:   authservice.UserPayload{ID: 42, Role: "client"},
			Client: &authservice.ClientPayload{ID: 420},
			Tokens: authservice.Tokens{Access: "access-token"},
		},
	}
	clients := &fakeClientClient{car: &clientservice.Car{ID: 1}}
	submitter := &fakeSubmitter{resp: &submitBooking.Response{BookingID: 77}}
	uc := NewUseCase(auth, clients, submitter, nopLogger{})

	resp, err := uc.RegisterAndBook(context.Background(), &RegisterRequest{Form: bookingForm()})

	require.NoError(t, err)
	assert.True(t, resp.Auth.Authenticated)
	assert.Equal(t, int64(42), resp.Auth.UserID)
	require.NotNil(t, resp.Auth.ClientID)
	assert.Equal(t, int64(420), *resp.Auth.ClientID)
	assert.True(t, resp.CarSaved)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(77), resp.Booking.BookingID)

	// Начальный пароль детерминированно выводится из цифр телефона
	require.NotNil(t, auth.registerReq)
	assert.Equal(t, "79123456789", auth.registerReq.Password)
	assert.Equal(t, "+79123456789", auth.registerReq.Phone)

	// Бронирование ушло под новыми учетными данными
	require.NotNil(t, submitter.last)
	assert.Equal(t, "access-token", submitter.last.Auth.AccessToken)
}

func TestRegisterAndBook_CarFailureDoesNotBlockBooking(t *testing.T) {
	auth := &fakeAuthClient{
		registerResp: &authservice.RegisterResponse{
			User:   authservice.UserPayload{ID: 42, Role: "client"},
			Client: &authservice.ClientPayload{ID: 420},
			Tokens: authservice.Tokens{Access: "access-token"},
		},
	}
	clients := &fakeClientClient{createErr: assert.AnError}
	submitter := &fakeSubmitter{resp: &submitBooking.Response{BookingID: 77}}
	uc := NewUseCase(auth, clients, submitter, nopLogger{})

	resp, err := uc.RegisterAndBook(context.Background(), &RegisterRequest{Form: bookingForm()})

	require.NoError(t, err)
	assert.False(t, resp.CarSaved)
	assert.Equal(t, 1, submitter.calls)
}

func TestRegisterAndBook_PhoneTakenBetweenCheckAndRegister(t *testing.T) {
	auth := &fakeAuthClient{registerErr: authservice.ErrPhoneAlreadyRegistered}
	uc := NewUseCase(auth, &fakeClientClient{}, &fakeSubmitter{}, nopLogger{})

	_, err := uc.RegisterAndBook(context.Background(), &RegisterRequest{Form: bookingForm()})

	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestRegisterAndBook_BookingFailureKeepsCredentials(t *testing.T) {
	auth := &fakeAuthClient{
		registerResp: &authservice.RegisterResponse{
			User:   authservice.UserPayload{ID: 42, Role: "client"},
			Tokens: authservice.Tokens{Access: "access-token"},
		},
	}
	submitter := &fakeSubmitter{err: assert.AnError}
	uc := NewUseCase(auth, &fakeClientClient{}, submitter, nopLogger{})

	resp, err := uc.RegisterAndBook(context.Background(), &RegisterRequest{Form: bookingForm()})

	require.ErrorIs(t, err, ErrBookingAfterAuth)
	require.NotNil(t, resp, "credentials must be returned alongside the error")
	assert.True(t, resp.Auth.Authenticated)
	assert.Equal(t, int64(42), resp.Auth.UserID)
	assert.Nil(t, resp.Booking)
}

func TestLoginAndBook_HappyPath(t *testing.T) {
	auth := &fakeAuthClient{
		loginResp: &authservice.LoginResponse{
			User:   &authservice.UserPayload{ID: 42, Role: "client"},
			Tokens: &authservice.Tokens{Access: "access-token"},
		},
	}
	submitter := &fakeSubmitter{resp: &submitBooking.Response{BookingID: 88}}
	uc := NewUseCase(auth, &fakeClientClient{}, submitter, nopLogger{})

	user := &domain.MatchedUser{ID: 42, Phone: "+79123456789", ClientID: ptr.Ptr(int64(420))}
	resp, err := uc.LoginAndBook(context.Background(), &LoginRequest{
		Form:     bookingForm(),
		User:     user,
		Password: "secret",
	})

	require.NoError(t, err)
	assert.True(t, resp.Auth.Authenticated)
	assert.Equal(t, "access-token", resp.Auth.AccessToken)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(88), resp.Booking.BookingID)

	require.NotNil(t, auth.loginReq)
	assert.Equal(t, "secret", auth.loginReq.Password)
}

func TestLoginAndBook_FlatTokenResponse(t *testing.T) {
	auth := &fakeAuthClient{
		loginResp: &authservice.LoginResponse{AccessToken: "flat-token"},
	}
	submitter := &fakeSubmitter{resp: &submitBooking.Response{BookingID: 88}}
	uc := NewUseCase(auth, &fakeClientClient{}, submitter, nopLogger{})

	user := &domain.MatchedUser{ID: 42, Phone: "+79123456789"}
	resp, err := uc.LoginAndBook(context.Background(), &LoginRequest{Form: bookingForm(), User: user, Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "flat-token", resp.Auth.AccessToken)
	assert.Equal(t, int64(42), resp.Auth.UserID, "user id falls back to the matched account")
}

func TestLoginAndBook_InvalidCredentials(t *testing.T) {
	auth := &fakeAuthClient{loginErr: authservice.ErrInvalidCredentials}
	uc := NewUseCase(auth, &fakeClientClient{}, &fakeSubmitter{}, nopLogger{})

	user := &domain.MatchedUser{ID: 42, Phone: "+79123456789"}
	_, err := uc.LoginAndBook(context.Background(), &LoginRequest{Form: bookingForm(), User: user, Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAndBook_RequiresMatchedUser(t *testing.T) {
	uc := NewUseCase(&fakeAuthClient{}, &fakeClientClient{}, &fakeSubmitter{}, nopLogger{})

	_, err := uc.LoginAndBook(context.Background(), &LoginRequest{Form: bookingForm(), Password: "secret"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginAndBook_BookingFailureKeepsCredentials(t *testing.T) {
	auth := &fakeAuthClient{
		loginResp: &authservice.LoginResponse{AccessToken: "access-token"},
	}
	submitter := &fakeSubmitter{err: assert.AnError}
	uc := NewUseCase(auth, &fakeClientClient{}, submitter, nopLogger{})

	user := &domain.MatchedUser{ID: 42, Phone: "+79123456789"}
	resp, err := uc.LoginAndBook(context.Background(), &LoginRequest{Form: bookingForm(), User: user, Password: "secret"})

	require.ErrorIs(t, err, ErrBookingAfterAuth)
	require.NotNil(t, resp)
	assert.True(t, resp.Auth.Authenticated)
}
