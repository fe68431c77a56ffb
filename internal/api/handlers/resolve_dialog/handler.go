package resolve_dialog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/TSP-WizardService/internal/api/handlers"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard"
	reconcileAccount "github.com/avdeevlv/TSP-WizardService/internal/usecase/reconcile_account"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgSessionNotFound     = "сессия мастера не найдена или истекла"
	msgNoActiveDialog      = "нет открытого диалога"
	msgUnknownDialogAction = "неизвестное действие диалога"
	msgSubmitInProgress    = "бронирование уже отправляется"
	msgInvalidInput        = "некорректные данные для выбранного действия"
	msgLookupFailed        = "не удалось проверить номер телефона, попробуйте еще раз"
	msgInvalidCredentials  = "неверный пароль"
	msgLoginFailed         = "не удалось войти, попробуйте еще раз"
	msgRegistrationFailed  = "не удалось создать аккаунт, попробуйте еще раз"
	msgAccountExists       = "аккаунт с этим номером уже существует"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/dialog
//
// Ошибки веток сверки аккаунта возвращаются клиенту, но диалог при этом
// остается открытым: пользователь может исправить пароль, повторить или
// продолжить гостем
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req DialogRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions/{id}/dialog - Invalid request body: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ResolveDialog(r.Context(), sessionID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			h.logger.Warn("POST /wizard/sessions/{id}/dialog - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, wizard.ErrNoActiveDialog):
			h.logger.Warn("POST /wizard/sessions/{id}/dialog - No active dialog: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgNoActiveDialog)

		case errors.Is(err, wizard.ErrUnknownDialogAction):
			h.logger.Warn("POST /wizard/sessions/{id}/dialog - Unknown action: session_id=%s, action=%s",
				sessionID, req.Action)
			handlers.RespondBadRequest(w, msgUnknownDialogAction)

		case errors.Is(err, wizard.ErrSubmitInProgress):
			h.logger.Warn("POST /wizard/sessions/{id}/dialog - Already submitting: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSubmitInProgress)

		case errors.Is(err, wizard.ErrInvalidInput):
			h.logger.Warn("POST /wizard/sessions/{id}/dialog - Invalid input: session_id=%s, action=%s",
				sessionID, req.Action)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reconcileAccount.ErrLookupFailed):
			h.logger.Warn("POST /wizard/sessions/{id}/dialog - Account lookup failed: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusBadGateway, msgLookupFailed)

		case errors.Is(err, reconcileAccount.ErrInvalidCredentials):
			h.logger.Warn("POST /wizard/sessions/{id}/dialog - Invalid credentials: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidCredentials)

		case errors.Is(err, reconcileAccount.ErrLoginFailed):
			h.logger.Error("POST /wizard/sessions/{id}/dialog - Login failed: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgLoginFailed)

		case errors.Is(err, reconcileAccount.ErrAccountExists):
			h.logger.Warn("POST /wizard/sessions/{id}/dialog - Account already exists: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAccountExists)

		case errors.Is(err, reconcileAccount.ErrRegistrationFailed):
			h.logger.Error("POST /wizard/sessions/{id}/dialog - Registration failed: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgRegistrationFailed)

		default:
			h.logger.Error("POST /wizard/sessions/{id}/dialog - Failed to resolve dialog: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
