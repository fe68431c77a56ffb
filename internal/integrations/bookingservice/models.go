package bookingservice

import "github.com/avdeevlv/TSP-WizardService/internal/domain"

// SlotsResponse ответ фида доступности сервисной точки
type SlotsResponse struct {
	Date           string           `json:"date"`
	ServicePointID int64            `json:"service_point_id"`
	Slots          []domain.RawSlot `json:"slots"`
}

// RecipientPayload контактные данные получателя услуги
type RecipientPayload struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
}

// BookingPayload тело бронирования в wire-формате портала
// Один и тот же формат для гостевого и аутентифицированного путей
type BookingPayload struct {
	ServicePointID    int64            `json:"service_point_id"`
	ServiceCategoryID int64            `json:"service_category_id"`
	CityID            *int64           `json:"city_id,omitempty"`
	BookingDate       string           `json:"booking_date"` // YYYY-MM-DD
	StartTime         string           `json:"start_time"`   // HH:MM
	Recipient         RecipientPayload `json:"service_recipient"`
	CarTypeID         int64            `json:"car_type_id"`
	CarBrand          *string          `json:"car_brand,omitempty"`
	CarModel          *string          `json:"car_model,omitempty"`
	LicensePlate      string           `json:"license_plate"`
	Notes             *string          `json:"notes,omitempty"`
}

// ServiceLinePayload выбранная услуга в wire-формате
type ServiceLinePayload struct {
	ServiceID int64   `json:"service_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateBookingRequest запрос на создание бронирования
// Пустой список услуг валиден: выбор услуг опционален
type CreateBookingRequest struct {
	Booking  BookingPayload       `json:"booking"`
	Services []ServiceLinePayload `json:"services"`
}

// CreateBookingResponse ответ на создание бронирования
type CreateBookingResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// ErrorResponse модель ошибки от сервиса бронирований
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
