package update_form

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/TSP-WizardService/internal/api/handlers"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия мастера не найдена или истекла"
	msgAlreadyDone        = "бронирование уже создано"
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

// Handle PATCH /api/v1/wizard/sessions/{sessionId}/form
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var patch models.FormPatch
	if err := handlers.DecodeJSON(r, &patch); err != nil {
		h.logger.Warn("PATCH /wizard/sessions/{id}/form - Invalid request body: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateForm(r.Context(), sessionID, &patch)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			h.logger.Warn("PATCH /wizard/sessions/{id}/form - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, wizard.ErrAlreadyDone):
			h.logger.Warn("PATCH /wizard/sessions/{id}/form - Session already done: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAlreadyDone)

		default:
			h.logger.Error("PATCH /wizard/sessions/{id}/form - Failed to update form: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
