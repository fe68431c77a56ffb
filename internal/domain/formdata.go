package domain

import "strings"

// ServiceRecipient человек, который получит услугу
// Может не совпадать с владельцем аккаунта
type ServiceRecipient struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
}

// ServiceLine выбранная услуга в составе бронирования
type ServiceLine struct {
	ServiceID int64   `json:"service_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// BookingFormData данные формы мастера, накапливаемые по шагам
// Поля более поздних шагов могут быть не заполнены: шаги обязаны
// переносить частично заполненную форму (навигация назад)
type BookingFormData struct {
	ServiceCategoryID *int64 `json:"service_category_id,omitempty"`
	CityID            *int64 `json:"city_id,omitempty"`
	ServicePointID    *int64 `json:"service_point_id,omitempty"`

	BookingDate string `json:"booking_date,omitempty"` // YYYY-MM-DD
	StartTime   string `json:"start_time,omitempty"`   // HH:MM

	Recipient ServiceRecipient `json:"service_recipient"`

	CarTypeID    *int64  `json:"car_type_id,omitempty"`
	CarBrand     *string `json:"car_brand,omitempty"`
	CarModel     *string `json:"car_model,omitempty"`
	LicensePlate string  `json:"license_plate,omitempty"`

	Services []ServiceLine `json:"services,omitempty"`
	Notes    *string       `json:"notes,omitempty"`
}

// SlotKey возвращает ключ фида доступности для текущего выбора
// Возвращает false, если цепочка категория/точка/дата еще не заполнена
func (f *BookingFormData) SlotKey() (SlotKey, bool) {
	if f.ServiceCategoryID == nil || f.ServicePointID == nil || strings.TrimSpace(f.BookingDate) == "" {
		return SlotKey{}, false
	}
	return SlotKey{
		ServicePointID: *f.ServicePointID,
		CategoryID:     *f.ServiceCategoryID,
		Date:           f.BookingDate,
	}, true
}

// HasCar проверяет, что обязательная часть описания автомобиля заполнена
func (f *BookingFormData) HasCar() bool {
	return f.CarTypeID != nil && strings.TrimSpace(f.LicensePlate) != ""
}

// NormalizedPlate возвращает госномер без пробелов в верхнем регистре
// Используется для сравнения с сохраненными автомобилями клиента
func NormalizedPlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(plate, " ", ""))
}
