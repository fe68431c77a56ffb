package bookingservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом бронирований портала
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса бронирований
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSlots получает сырой фид слотов для точки обслуживания на дату
// durationMinutes опционально сужает фид по длительности услуги
func (c *Client) GetSlots(ctx context.Context, servicePointID, categoryID int64, date string, durationMinutes *int) ([]domain.RawSlot, error) {
	q := url.Values{}
	q.Set("category_id", fmt.Sprintf("%d", categoryID))
	if durationMinutes != nil {
		q.Set("duration", fmt.Sprintf("%d", *durationMinutes))
	}

	reqURL := fmt.Sprintf("%s/service_points/%d/availability/%s?%s", c.baseURL, servicePointID, date, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrServicePointNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var slotsResp SlotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&slotsResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return slotsResp.Slots, nil
}

// GetDayDetails получает дневную сводку занятости точки обслуживания
func (c *Client) GetDayDetails(ctx context.Context, servicePointID, categoryID int64, date string) (*domain.DayDetails, error) {
	q := url.Values{}
	q.Set("category_id", fmt.Sprintf("%d", categoryID))

	reqURL := fmt.Sprintf("%s/service_points/%d/availability/%s/details?%s", c.baseURL, servicePointID, date, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrServicePointNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var details domain.DayDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &details, nil
}

// CreateBooking создает бронирование под сессией пользователя
func (c *Client) CreateBooking(ctx context.Context, req *CreateBookingRequest, accessToken string) (*CreateBookingResponse, error) {
	return c.createBooking(ctx, c.baseURL+"/bookings", req, accessToken)
}

// CreateGuestBooking создает гостевое бронирование без сессии
func (c *Client) CreateGuestBooking(ctx context.Context, req *CreateBookingRequest) (*CreateBookingResponse, error) {
	return c.createBooking(ctx, c.baseURL+"/guest/bookings", req, "")
}

func (c *Client) createBooking(ctx context.Context, reqURL string, payload *CreateBookingRequest, accessToken string) (*CreateBookingResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Ошибки валидации: сообщение сервера передаем дальше дословно
		var errResp ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil || errResp.Message == "" {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var created CreateBookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &created, nil
}
