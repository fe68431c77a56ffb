package navigate_wizard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/TSP-WizardService/internal/api/handlers"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия мастера не найдена или истекла"
	msgStepIncomplete     = "заполните текущий шаг, чтобы продолжить"
	msgAlreadyDone        = "бронирование уже создано"
	msgInvalidAction      = "некорректное действие навигации"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/navigate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req NavigateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/navigate - Invalid request body: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Navigate(r.Context(), sessionID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			h.logger.Warn("POST /wizard/sessions/{id}/navigate - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, wizard.ErrStepIncomplete):
			h.logger.Warn("POST /wizard/sessions/{id}/navigate - Step incomplete: session_id=%s, action=%s",
				sessionID, req.Action)
			handlers.RespondBadRequest(w, msgStepIncomplete)

		case errors.Is(err, wizard.ErrAlreadyDone):
			h.logger.Warn("POST /wizard/sessions/{id}/navigate - Session already done: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAlreadyDone)

		case errors.Is(err, wizard.ErrInvalidInput):
			h.logger.Warn("POST /wizard/sessions/{id}/navigate - Invalid action: session_id=%s, action=%s",
				sessionID, req.Action)
			handlers.RespondBadRequest(w, msgInvalidAction)

		default:
			h.logger.Error("POST /wizard/sessions/{id}/navigate - Failed to navigate: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
