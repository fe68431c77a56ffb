package create_session

import "github.com/avdeevlv/TSP-WizardService/internal/domain"

// CreateSessionRequest тело запроса создания сессии мастера
// Prefill заполняется входящей навигацией (переход с карточки точки
// обслуживания или из каталога услуг)
type CreateSessionRequest struct {
	Prefill *domain.BookingFormData `json:"prefill,omitempty"`
}
