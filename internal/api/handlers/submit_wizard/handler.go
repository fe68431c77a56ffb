package submit_wizard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/TSP-WizardService/internal/api/handlers"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard"
)

const (
	msgSessionNotFound  = "сессия мастера не найдена или истекла"
	msgNotAtReview      = "отправка доступна только с шага подтверждения"
	msgStepIncomplete   = "заполните все обязательные шаги перед отправкой"
	msgSubmitInProgress = "бронирование уже отправляется"
	msgAlreadyDone      = "бронирование уже создано"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/submit
//
// Сбой создания бронирования на портале не является ошибкой HTTP уровня:
// возвращается 200 с submit_error в состоянии сессии, пользователь остается
// на шаге подтверждения и может повторить
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.service.Submit(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			h.logger.Warn("POST /wizard/sessions/{id}/submit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, wizard.ErrNotAtReview):
			h.logger.Warn("POST /wizard/sessions/{id}/submit - Not at review step: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgNotAtReview)

		case errors.Is(err, wizard.ErrStepIncomplete):
			h.logger.Warn("POST /wizard/sessions/{id}/submit - Form incomplete: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgStepIncomplete)

		case errors.Is(err, wizard.ErrSubmitInProgress):
			h.logger.Warn("POST /wizard/sessions/{id}/submit - Already submitting: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSubmitInProgress)

		case errors.Is(err, wizard.ErrAlreadyDone):
			h.logger.Warn("POST /wizard/sessions/{id}/submit - Already done: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAlreadyDone)

		default:
			h.logger.Error("POST /wizard/sessions/{id}/submit - Failed to submit: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
