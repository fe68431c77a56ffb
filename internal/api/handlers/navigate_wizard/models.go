package navigate_wizard

import "github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"

// NavigateRequest тело запроса навигации по шагам
type NavigateRequest struct {
	Action string `json:"action"` // next, back или jump
	Index  int    `json:"index"`  // Целевой индекс, только для jump
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *NavigateRequest) ToServiceRequest() *models.NavigateRequest {
	return &models.NavigateRequest{
		Action: models.NavigateAction(r.Action),
		Index:  r.Index,
	}
}
