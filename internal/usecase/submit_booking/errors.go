package submit_booking

import (
	"errors"

	"github.com/avdeevlv/TSP-WizardService/internal/integrations/bookingservice"
)

var (
	// ErrInvalidInput возвращается при неполной форме (пропущены обязательные шаги)
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrSubmitFailed возвращается, когда портал отклонил или не принял бронирование
	ErrSubmitFailed = errors.New("submit_booking: submission failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// msgSubmitFallback показывается, когда сервер не прислал собственного сообщения
const msgSubmitFallback = "не удалось создать бронирование, попробуйте еще раз"

// UserMessage возвращает текст ошибки отправки для пользователя:
// сообщение сервера дословно, если оно есть, иначе общий fallback
func UserMessage(err error) string {
	var apiErr *bookingservice.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgSubmitFallback
}
