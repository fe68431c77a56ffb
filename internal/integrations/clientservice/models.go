package clientservice

// Car автомобиль, сохраненный в профиле клиента
type Car struct {
	ID           int64   `json:"id"`
	ClientID     int64   `json:"client_id"`
	CarTypeID    *int64  `json:"car_type_id,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	LicensePlate string  `json:"license_plate"`
}

// CreateCarRequest запрос на сохранение автомобиля в профиль клиента
type CreateCarRequest struct {
	CarTypeID    *int64  `json:"car_type_id,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	LicensePlate string  `json:"license_plate"`
}

// ErrorResponse модель ошибки от сервиса клиентов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
