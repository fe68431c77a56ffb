package cancel_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/TSP-WizardService/internal/api/handlers"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard"
)

const msgSessionNotFound = "сессия мастера не найдена или истекла"

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

// Handle DELETE /api/v1/wizard/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.service.CancelSession(r.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			h.logger.Warn("DELETE /wizard/sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("DELETE /wizard/sessions/{id} - Failed to cancel session: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /wizard/sessions/{id} - Session cancelled: session_id=%s", sessionID)
	handlers.RespondNoContent(w)
}
