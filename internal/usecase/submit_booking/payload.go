package submit_booking

import (
	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/integrations/bookingservice"
	"github.com/avdeevlv/TSP-WizardService/pkg/phonenum"
)

// buildRequest собирает wire-представление бронирования из данных формы
//
// Гостевой и аутентифицированный пути используют ОДНУ и ту же сборку:
// различие между ними только в endpoint и контексте сессии
func buildRequest(form *domain.BookingFormData) *bookingservice.CreateBookingRequest {
	services := make([]bookingservice.ServiceLinePayload, 0, len(form.Services))
	for _, line := range form.Services {
		services = append(services, bookingservice.ServiceLinePayload{
			ServiceID: line.ServiceID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	var categoryID, pointID, carTypeID int64
	if form.ServiceCategoryID != nil {
		categoryID = *form.ServiceCategoryID
	}
	if form.ServicePointID != nil {
		pointID = *form.ServicePointID
	}
	if form.CarTypeID != nil {
		carTypeID = *form.CarTypeID
	}

	return &bookingservice.CreateBookingRequest{
		Booking: bookingservice.BookingPayload{
			ServicePointID:    pointID,
			ServiceCategoryID: categoryID,
			CityID:            form.CityID,
			BookingDate:       form.BookingDate,
			StartTime:         form.StartTime,
			Recipient: bookingservice.RecipientPayload{
				FirstName: form.Recipient.FirstName,
				LastName:  form.Recipient.LastName,
				Phone:     phonenum.Normalize(form.Recipient.Phone),
				Email:     form.Recipient.Email,
			},
			CarTypeID:    carTypeID,
			CarBrand:     form.CarBrand,
			CarModel:     form.CarModel,
			LicensePlate: form.LicensePlate,
			Notes:        form.Notes,
		},
		Services: services,
	}
}
