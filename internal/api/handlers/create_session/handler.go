package create_session

import (
	"errors"
	"io"
	"net/http"

	"github.com/avdeevlv/TSP-WizardService/internal/api/handlers"
	"github.com/avdeevlv/TSP-WizardService/internal/api/middleware"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/wizard/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Тело опционально: сессия без prefill начинается с первого шага
	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /wizard/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	auth := middleware.AuthFromContext(r.Context())

	result, err := h.service.CreateSession(r.Context(), &models.CreateSessionRequest{
		Auth:    auth,
		Prefill: req.Prefill,
	})
	if err != nil {
		h.logger.Error("POST /wizard/sessions - Failed to create session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /wizard/sessions - Session created: session_id=%s, step=%d",
		result.SessionID, result.ActiveStepIndex)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
