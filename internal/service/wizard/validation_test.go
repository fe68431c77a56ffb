package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/pkg/ptr"
)

func validRecipient() domain.ServiceRecipient {
	return domain.ServiceRecipient{
		FirstName: "Иван",
		LastName:  "Петров",
		Phone:     "+7 (912) 345-67-89",
	}
}

func completeForm() domain.BookingFormData {
	return domain.BookingFormData{
		ServiceCategoryID: ptr.Ptr(int64(1)),
		CityID:            ptr.Ptr(int64(2)),
		ServicePointID:    ptr.Ptr(int64(3)),
		BookingDate:       "2025-11-20",
		StartTime:         "10:30",
		Recipient:         validRecipient(),
		CarTypeID:         ptr.Ptr(int64(4)),
		LicensePlate:      "А123БВ777",
	}
}

func TestStepComplete_CategorySelection(t *testing.T) {
	form := domain.BookingFormData{}
	assert.False(t, StepComplete(domain.StepCategorySelection, &form))

	form.ServiceCategoryID = ptr.Ptr(int64(0))
	assert.False(t, StepComplete(domain.StepCategorySelection, &form))

	form.ServiceCategoryID = ptr.Ptr(int64(5))
	assert.True(t, StepComplete(domain.StepCategorySelection, &form))
}

func TestStepComplete_CityServicePoint(t *testing.T) {
	form := domain.BookingFormData{CityID: ptr.Ptr(int64(1))}
	assert.False(t, StepComplete(domain.StepCityServicePoint, &form))

	form.ServicePointID = ptr.Ptr(int64(2))
	assert.True(t, StepComplete(domain.StepCityServicePoint, &form))
}

func TestStepComplete_DateTime(t *testing.T) {
	form := domain.BookingFormData{BookingDate: "2025-11-20"}
	assert.False(t, StepComplete(domain.StepDateTime, &form))

	form.StartTime = "10:30"
	assert.True(t, StepComplete(domain.StepDateTime, &form))

	form.StartTime = "   "
	assert.False(t, StepComplete(domain.StepDateTime, &form))
}

func TestStepComplete_ClientInfo(t *testing.T) {
	tests := []struct {
		name      string
		recipient domain.ServiceRecipient
		want      bool
	}{
		{
			name:      "valid without email",
			recipient: validRecipient(),
			want:      true,
		},
		{
			name: "first name too short",
			recipient: domain.ServiceRecipient{
				FirstName: "И",
				LastName:  "Петров",
				Phone:     "+79123456789",
			},
			want: false,
		},
		{
			name: "last name is only whitespace",
			recipient: domain.ServiceRecipient{
				FirstName: "Иван",
				LastName:  "   ",
				Phone:     "+79123456789",
			},
			want: false,
		},
		{
			name: "phone too short",
			recipient: domain.ServiceRecipient{
				FirstName: "Иван",
				LastName:  "Петров",
				Phone:     "12345",
			},
			want: false,
		},
		{
			name: "phone too long",
			recipient: domain.ServiceRecipient{
				FirstName: "Иван",
				LastName:  "Петров",
				Phone:     "1234567890123456",
			},
			want: false,
		},
		{
			name: "formatting characters do not count as digits",
			recipient: domain.ServiceRecipient{
				FirstName: "Иван",
				LastName:  "Петров",
				Phone:     "+7 (912) 345-67-89",
			},
			want: true,
		},
		{
			name: "invalid email rejected",
			recipient: domain.ServiceRecipient{
				FirstName: "Иван",
				LastName:  "Петров",
				Phone:     "+79123456789",
				Email:     ptr.Ptr("not-an-email"),
			},
			want: false,
		},
		{
			name: "valid email accepted",
			recipient: domain.ServiceRecipient{
				FirstName: "Иван",
				LastName:  "Петров",
				Phone:     "+79123456789",
				Email:     ptr.Ptr("ivan@example.com"),
			},
			want: true,
		},
		{
			name: "empty email treated as absent",
			recipient: domain.ServiceRecipient{
				FirstName: "Иван",
				LastName:  "Петров",
				Phone:     "+79123456789",
				Email:     ptr.Ptr(""),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := domain.BookingFormData{Recipient: tt.recipient}
			assert.Equal(t, tt.want, StepComplete(domain.StepClientInfo, &form))
		})
	}
}

func TestStepComplete_CarType(t *testing.T) {
	form := domain.BookingFormData{CarTypeID: ptr.Ptr(int64(1))}
	assert.False(t, StepComplete(domain.StepCarType, &form))

	form.LicensePlate = "А123БВ777"
	assert.True(t, StepComplete(domain.StepCarType, &form))
}

func TestStepComplete_ReviewAlwaysComplete(t *testing.T) {
	form := domain.BookingFormData{}
	assert.True(t, StepComplete(domain.StepReview, &form))
}

func TestFirstIncompleteStep(t *testing.T) {
	form := domain.BookingFormData{}
	assert.Equal(t, 0, FirstIncompleteStep(&form))

	form.ServiceCategoryID = ptr.Ptr(int64(1))
	assert.Equal(t, 1, FirstIncompleteStep(&form))

	form.CityID = ptr.Ptr(int64(2))
	form.ServicePointID = ptr.Ptr(int64(3))
	assert.Equal(t, 2, FirstIncompleteStep(&form))

	full := completeForm()
	assert.Equal(t, domain.ReviewStepIndex(), FirstIncompleteStep(&full))
}

func TestStepCompleteness_ReflectsRetroactiveInvalidation(t *testing.T) {
	form := completeForm()
	before := StepCompleteness(&form)
	for i, complete := range before {
		assert.True(t, complete, "step %d should be complete", i)
	}

	// Очистка раннего поля делает его шаг незаполненным задним числом
	form.ServiceCategoryID = nil
	after := StepCompleteness(&form)
	assert.False(t, after[0])
	assert.True(t, after[2], "later steps keep their own data")
}
