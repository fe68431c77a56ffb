package bookingservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestGetSlots_ParsesFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/service_points/3/availability/2025-11-20", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("category_id"))

		_ = json.NewEncoder(w).Encode(SlotsResponse{
			Date:           "2025-11-20",
			ServicePointID: 3,
			Slots: []domain.RawSlot{
				{StartTime: "10:00", AvailablePosts: 2, TotalPosts: 3},
				{StartTime: "10:30", AvailablePosts: 0, TotalPosts: 3},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	slots, err := client.GetSlots(context.Background(), 3, 1, "2025-11-20", nil)

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 2, slots[0].AvailablePosts)
	assert.True(t, slots[1].IsFull())
}

func TestGetSlots_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	_, err := client.GetSlots(context.Background(), 3, 1, "2025-11-20", nil)

	assert.ErrorIs(t, err, ErrServicePointNotFound)
}

func TestCreateBooking_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreateBookingResponse{ID: 77, Status: "created"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	created, err := client.CreateBooking(context.Background(), &CreateBookingRequest{}, "access-token")

	require.NoError(t, err)
	assert.Equal(t, int64(77), created.ID)
}

func TestCreateGuestBooking_OmitsAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/guest/bookings", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreateBookingResponse{ID: 78, Status: "created"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	created, err := client.CreateGuestBooking(context.Background(), &CreateBookingRequest{})

	require.NoError(t, err)
	assert.Equal(t, int64(78), created.ID)
}

func TestCreateBooking_ClientErrorCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Code: 409, Message: "выбранный временной слот недоступен"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	_, err := client.CreateGuestBooking(context.Background(), &CreateBookingRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "выбранный временной слот недоступен", apiErr.Message)
}

func TestCreateBooking_ServerErrorIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nopLogger{})
	_, err := client.CreateGuestBooking(context.Background(), &CreateBookingRequest{})

	assert.ErrorIs(t, err, ErrInvalidResponse)
}
