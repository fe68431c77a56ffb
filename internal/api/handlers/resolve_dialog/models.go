package resolve_dialog

import "github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"

// DialogRequest тело запроса действия в открытом диалоге
type DialogRequest struct {
	Action   string `json:"action"`
	Password string `json:"password,omitempty"` // Только для action=login
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *DialogRequest) ToServiceRequest() *models.DialogRequest {
	return &models.DialogRequest{
		Action:   models.DialogAction(r.Action),
		Password: r.Password,
	}
}
