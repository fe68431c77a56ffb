package submit_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/bookingservice"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/clientservice"
	"github.com/avdeevlv/TSP-WizardService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingClient struct {
	resp *bookingservice.CreateBookingResponse
	err  error

	authReq   *bookingservice.CreateBookingRequest
	authToken string
	guestReq  *bookingservice.CreateBookingRequest
}

func (f *fakeBookingClient) CreateBooking(ctx context.Context, req *bookingservice.CreateBookingRequest, accessToken string) (*bookingservice.CreateBookingResponse, error) {
	f.authReq = req
	f.authToken = accessToken
	return f.resp, f.err
}

func (f *fakeBookingClient) CreateGuestBooking(ctx context.Context, req *bookingservice.CreateBookingRequest) (*bookingservice.CreateBookingResponse, error) {
	f.guestReq = req
	return f.resp, f.err
}

type fakeClientClient struct {
	cars      []clientservice.Car
	listErr   error
	car       *clientservice.Car
	createErr error

	createCalls int
	lastCarReq  *clientservice.CreateCarRequest
}

func (f *fakeClientClient) ListCars(ctx context.Context, clientID int64, accessToken string) ([]clientservice.Car, error) {
	return f.cars, f.listErr
}

func (f *fakeClientClient) CreateCar(ctx context.Context, clientID int64, req *clientservice.CreateCarRequest, accessToken string) (*clientservice.Car, error) {
	f.createCalls++
	f.lastCarReq = req
	return f.car, f.createErr
}

func validForm() domain.BookingFormData {
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
		Services: []domain.ServiceLine{
			{ServiceID: 10, Quantity: 1, Price: 1500},
		},
	}
}

func TestBuildRequest_GuestAndAuthenticatedPayloadsAreIdentical(t *testing.T) {
	booking := &fakeBookingClient{resp: &bookingservice.CreateBookingResponse{ID: 1}}
	clients := &fakeClientClient{}
	uc := NewUseCase(booking, clients, nopLogger{})
	ctx := context.Background()

	form := validForm()
	_, err := uc.ExecuteGuest(ctx, &Request{Form: form})
	require.NoError(t, err)

	auth := domain.AuthState{Authenticated: true, UserID: 7, AccessToken: "token"}
	_, err = uc.ExecuteAuthenticated(ctx, &Request{Form: form, Auth: auth})
	require.NoError(t, err)

	// Пути различаются только endpoint'ом и контекстом сессии
	assert.Equal(t, booking.guestReq, booking.authReq)
	assert.Equal(t, "token", booking.authToken)
}

func TestBuildRequest_NormalizesPhone(t *testing.T) {
	booking := &fakeBookingClient{resp: &bookingservice.CreateBookingResponse{ID: 1}}
	uc := NewUseCase(booking, &fakeClientClient{}, nopLogger{})

	_, err := uc.ExecuteGuest(context.Background(), &Request{Form: validForm()})
	require.NoError(t, err)

	require.NotNil(t, booking.guestReq)
	assert.Equal(t, "+79123456789", booking.guestReq.Booking.Recipient.Phone)
}

func TestExecuteGuest_RejectsIncompleteForm(t *testing.T) {
	booking := &fakeBookingClient{}
	uc := NewUseCase(booking, &fakeClientClient{}, nopLogger{})

	form := validForm()
	form.BookingDate = ""
	_, err := uc.ExecuteGuest(context.Background(), &Request{Form: form})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, booking.guestReq, "no request goes out for an incomplete form")
}

func TestExecuteGuest_WrapsPortalRejection(t *testing.T) {
	booking := &fakeBookingClient{err: &bookingservice.APIError{StatusCode: 409, Message: "слот занят"}}
	uc := NewUseCase(booking, &fakeClientClient{}, nopLogger{})

	_, err := uc.ExecuteGuest(context.Background(), &Request{Form: validForm()})

	require.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, "слот занят", UserMessage(err), "server message passes through verbatim")
}

func TestUserMessage_FallbackWithoutServerMessage(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, "не удалось создать бронирование, попробуйте еще раз", UserMessage(err))
}

func TestExecuteAuthenticated_OffersSaveCarForUnknownPlate(t *testing.T) {
	booking := &fakeBookingClient{resp: &bookingservice.CreateBookingResponse{ID: 5}}
	clients := &fakeClientClient{
		cars: []clientservice.Car{{ID: 1, LicensePlate: "Х000ХХ00"}},
	}
	uc := NewUseCase(booking, clients, nopLogger{})

	auth := domain.AuthState{Authenticated: true, UserID: 7, ClientID: ptr.Ptr(int64(70))}
	resp, err := uc.ExecuteAuthenticated(context.Background(), &Request{Form: validForm(), Auth: auth})

	require.NoError(t, err)
	assert.True(t, resp.NeedsSaveCar)
}

func TestExecuteAuthenticated_NoOfferWhenPlateAlreadySaved(t *testing.T) {
	booking := &fakeBookingClient{resp: &bookingservice.CreateBookingResponse{ID: 5}}
	clients := &fakeClientClient{
		// Госномера сравниваются без пробелов и без учета регистра букв
		cars: []clientservice.Car{{ID: 1, LicensePlate: "а123бв 777"}},
	}
	uc := NewUseCase(booking, clients, nopLogger{})

	auth := domain.AuthState{Authenticated: true, UserID: 7, ClientID: ptr.Ptr(int64(70))}
	resp, err := uc.ExecuteAuthenticated(context.Background(), &Request{Form: validForm(), Auth: auth})

	require.NoError(t, err)
	assert.False(t, resp.NeedsSaveCar)
}

func TestExecuteAuthenticated_CarsListFailureSkipsOffer(t *testing.T) {
	booking := &fakeBookingClient{resp: &bookingservice.CreateBookingResponse{ID: 5}}
	clients := &fakeClientClient{listErr: assert.AnError}
	uc := NewUseCase(booking, clients, nopLogger{})

	auth := domain.AuthState{Authenticated: true, UserID: 7, ClientID: ptr.Ptr(int64(70))}
	resp, err := uc.ExecuteAuthenticated(context.Background(), &Request{Form: validForm(), Auth: auth})

	require.NoError(t, err, "booking success is not undone by a cars list failure")
	assert.False(t, resp.NeedsSaveCar)
}

func TestSaveCar_RequiresClientID(t *testing.T) {
	uc := NewUseCase(&fakeBookingClient{}, &fakeClientClient{}, nopLogger{})

	err := uc.SaveCar(context.Background(), &Request{Form: validForm(), Auth: domain.AuthState{Authenticated: true}})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveCar_SendsFormCar(t *testing.T) {
	clients := &fakeClientClient{car: &clientservice.Car{ID: 9}}
	uc := NewUseCase(&fakeBookingClient{}, clients, nopLogger{})

	form := validForm()
	auth := domain.AuthState{Authenticated: true, ClientID: ptr.Ptr(int64(70)), AccessToken: "token"}
	require.NoError(t, uc.SaveCar(context.Background(), &Request{Form: form, Auth: auth}))

	require.NotNil(t, clients.lastCarReq)
	assert.Equal(t, form.LicensePlate, clients.lastCarReq.LicensePlate)
	assert.Equal(t, form.CarTypeID, clients.lastCarReq.CarTypeID)
}
