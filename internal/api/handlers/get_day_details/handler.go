package get_day_details

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/TSP-WizardService/internal/api/handlers"
	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard"
)

const (
	msgSessionNotFound     = "сессия мастера не найдена или истекла"
	msgSelectionIncomplete = "сначала выберите категорию услуг и точку обслуживания"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/wizard/sessions/{sessionId}/days/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]
	date := vars["date"]

	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		h.logger.Warn("GET /wizard/sessions/{id}/days/{date} - Invalid date: session_id=%s, date=%s",
			sessionID, date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDayDetails(r.Context(), sessionID, date)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			h.logger.Warn("GET /wizard/sessions/{id}/days/{date} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, wizard.ErrSelectionIncomplete):
			h.logger.Warn("GET /wizard/sessions/{id}/days/{date} - Selection incomplete: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgSelectionIncomplete)

		default:
			h.logger.Error("GET /wizard/sessions/{id}/days/{date} - Failed to get day details: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
