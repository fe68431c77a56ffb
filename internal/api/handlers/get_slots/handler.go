package get_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/TSP-WizardService/internal/api/handlers"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard"
)

const (
	msgSessionNotFound     = "сессия мастера не найдена или истекла"
	msgSelectionIncomplete = "сначала выберите категорию услуг, точку обслуживания и дату"
)

type Handler struct {
	service WizardService
	logger  Logger
}

func NewHandler(service WizardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/wizard/sessions/{sessionId}/slots
//
// Слоты запрашиваются для текущего выбора формы (точка, категория, дата).
// Недоступность фида занятости не является ошибкой: возвращается пустой
// список с флагом degraded
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.service.LoadSlots(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			h.logger.Warn("GET /wizard/sessions/{id}/slots - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, wizard.ErrSelectionIncomplete):
			h.logger.Warn("GET /wizard/sessions/{id}/slots - Selection incomplete: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgSelectionIncomplete)

		default:
			h.logger.Error("GET /wizard/sessions/{id}/slots - Failed to load slots: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
