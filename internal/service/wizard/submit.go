package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"
	reconcileAccount "github.com/avdeevlv/TSP-WizardService/internal/usecase/reconcile_account"
	submitBooking "github.com/avdeevlv/TSP-WizardService/internal/usecase/submit_booking"
	"github.com/avdeevlv/TSP-WizardService/pkg/ptr"
)

// Метки метрик исходов сверки аккаунта
const (
	outcomeRegistered = "registered"
	outcomeLoggedIn   = "logged_in"
	outcomeGuest      = "guest"
)

// Submit обрабатывает нажатие "Записаться" на шаге подтверждения
//
// Аутентифицированный пользователь уходит сразу в создание бронирования.
// Неаутентифицированному сначала открывается диалог выбора типа записи,
// сетевых вызовов на этом этапе нет.
// Повторное нажатие, пока первая отправка в полете, отклоняется
func (s *Service) Submit(ctx context.Context, id string) (*models.SessionView, error) {
	mu := s.sessionLock(id)
	mu.Lock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		mu.Unlock()
		return nil, err
	}

	// 1. Проверяем, что отправка вообще возможна
	if session.State.Done {
		mu.Unlock()
		return nil, ErrAlreadyDone
	}
	if session.State.IsSubmitting {
		mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if !session.State.AtReview() {
		mu.Unlock()
		return nil, ErrNotAtReview
	}
	if FirstIncompleteStep(&session.State.FormData) != domain.ReviewStepIndex() {
		mu.Unlock()
		return nil, ErrStepIncomplete
	}

	session.State.SubmitError = nil

	// 2. Без аутентификации открываем диалог выбора типа записи
	if !session.Auth.Authenticated {
		session.State.VisibleDialog = domain.DialogTypeChoice
		if err := s.persist(ctx, session); err != nil {
			mu.Unlock()
			return nil, err
		}
		mu.Unlock()
		return s.view(session), nil
	}

	// 3. Аутентифицированный путь: фиксируем отправку и зовем портал
	form := session.State.FormData
	auth := session.Auth
	session.State.IsSubmitting = true
	if err := s.persist(ctx, session); err != nil {
		mu.Unlock()
		return nil, err
	}
	mu.Unlock()

	resp, submitErr := s.submitUC.ExecuteAuthenticated(ctx, &submitBooking.Request{
		Form: form,
		Auth: auth,
	})

	// 4. Применяем исход к актуальному состоянию сессии
	mu.Lock()
	defer mu.Unlock()

	session, err = s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	session.State.IsSubmitting = false

	if submitErr != nil {
		session.State.SubmitError = ptr.Ptr(submitBooking.UserMessage(submitErr))
		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Warn("Submit: session=%s authenticated submission failed: %v", id, submitErr)
		return s.view(session), nil
	}

	s.metrics.IncBookingCreated("authenticated")
	session.State.BookingID = ptr.Ptr(resp.BookingID)

	// 5. Предлагаем сохранить автомобиль в профиль, если его там еще нет
	if resp.NeedsSaveCar {
		session.State.VisibleDialog = domain.DialogAddCar
	} else {
		s.complete(session)
	}

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Submit: session=%s booking=%d created (authenticated)", id, resp.BookingID)
	return s.view(session), nil
}

// ResolveDialog обрабатывает действие пользователя в открытом модальном диалоге
func (s *Service) ResolveDialog(ctx context.Context, id string, req *models.DialogRequest) (*models.SessionView, error) {
	mu := s.sessionLock(id)
	mu.Lock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		mu.Unlock()
		return nil, err
	}

	if session.State.IsSubmitting {
		mu.Unlock()
		return nil, ErrSubmitInProgress
	}

	switch session.State.VisibleDialog {
	case domain.DialogTypeChoice:
		return s.resolveTypeChoice(ctx, mu, session, req)
	case domain.DialogExistingUser:
		return s.resolveExistingUser(ctx, mu, session, req)
	case domain.DialogAddCar:
		return s.resolveAddCar(ctx, mu, session, req)
	default:
		mu.Unlock()
		return nil, ErrNoActiveDialog
	}
}

// resolveTypeChoice обрабатывает выбор типа записи ("с аккаунтом" / "без аккаунта")
// Вызывается с удержанной блокировкой сессии и освобождает ее сам
func (s *Service) resolveTypeChoice(ctx context.Context, mu *sync.Mutex, session *domain.Session, req *models.DialogRequest) (*models.SessionView, error) {
	switch req.Action {
	case models.DialogActionWithoutAccount:
		return s.submitAsGuest(ctx, mu, session)

	case models.DialogActionWithAccount:
		phone := session.State.FormData.Recipient.Phone
		id := session.ID
		mu.Unlock()

		// Синхронная проверка существования аккаунта: от ее результата
		// зависит следующий диалог
		match, err := s.reconcileUC.Lookup(ctx, phone)

		mu.Lock()

		session, loadErr := s.loadSession(ctx, id)
		if loadErr != nil {
			mu.Unlock()
			return nil, loadErr
		}
		if err != nil {
			// Диалог выбора остается открытым: пользователь может
			// повторить или продолжить гостем
			mu.Unlock()
			s.logger.Warn("ResolveDialog: session=%s account lookup failed: %v", id, err)
			return nil, err
		}

		if match.Exists {
			session.AccountHint = match
			session.State.VisibleDialog = domain.DialogExistingUser
			if err := s.persist(ctx, session); err != nil {
				mu.Unlock()
				return nil, err
			}
			view := s.view(session)
			mu.Unlock()
			return view, nil
		}

		return s.registerAndBookLocked(ctx, mu, session)

	default:
		mu.Unlock()
		return nil, fmt.Errorf("%w: %q for typeChoice dialog", ErrUnknownDialogAction, req.Action)
	}
}

// resolveExistingUser обрабатывает диалог найденного аккаунта
func (s *Service) resolveExistingUser(ctx context.Context, mu *sync.Mutex, session *domain.Session, req *models.DialogRequest) (*models.SessionView, error) {
	switch req.Action {
	case models.DialogActionContinueGuest:
		session.AccountHint = nil
		return s.submitAsGuest(ctx, mu, session)

	case models.DialogActionLogin:
		if req.Password == "" {
			mu.Unlock()
			return nil, fmt.Errorf("%w: password is required for login", ErrInvalidInput)
		}
		if session.AccountHint == nil || session.AccountHint.User == nil {
			mu.Unlock()
			return nil, fmt.Errorf("%w: no matched account for login", ErrInvalidInput)
		}
		return s.loginAndBookLocked(ctx, mu, session, req.Password)

	default:
		mu.Unlock()
		return nil, fmt.Errorf("%w: %q for existingUser dialog", ErrUnknownDialogAction, req.Action)
	}
}

// resolveAddCar обрабатывает предложение сохранить автомобиль в профиль
// Сохранение best-effort: сбой не мешает показать успех бронирования
func (s *Service) resolveAddCar(ctx context.Context, mu *sync.Mutex, session *domain.Session, req *models.DialogRequest) (*models.SessionView, error) {
	defer mu.Unlock()

	switch req.Action {
	case models.DialogActionSaveCar:
		err := s.submitUC.SaveCar(ctx, &submitBooking.Request{
			Form: session.State.FormData,
			Auth: session.Auth,
		})
		if err != nil {
			s.logger.Warn("ResolveDialog: session=%s failed to save car, finishing anyway: %v",
				session.ID, err)
		}

	case models.DialogActionSkipCar:
		// Пользователь отказался: просто закрываем

	default:
		return nil, fmt.Errorf("%w: %q for addCar dialog", ErrUnknownDialogAction, req.Action)
	}

	s.complete(session)
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// submitAsGuest отправляет гостевое бронирование из диалога
// Вызывается с удержанной блокировкой и освобождает ее сам
func (s *Service) submitAsGuest(ctx context.Context, mu *sync.Mutex, session *domain.Session) (*models.SessionView, error) {
	id := session.ID
	form := session.State.FormData
	session.State.IsSubmitting = true
	if err := s.persist(ctx, session); err != nil {
		mu.Unlock()
		return nil, err
	}
	mu.Unlock()

	resp, submitErr := s.submitUC.ExecuteGuest(ctx, &submitBooking.Request{Form: form})

	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	session.State.IsSubmitting = false

	if submitErr != nil {
		// Возврат на шаг подтверждения с сообщением сервера
		session.State.VisibleDialog = domain.DialogNone
		session.State.SubmitError = ptr.Ptr(submitBooking.UserMessage(submitErr))
		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Warn("ResolveDialog: session=%s guest submission failed: %v", id, submitErr)
		return s.view(session), nil
	}

	s.metrics.IncBookingCreated("guest")
	s.metrics.IncReconcileOutcome(outcomeGuest)
	session.State.BookingID = ptr.Ptr(resp.BookingID)
	s.complete(session)

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("ResolveDialog: session=%s booking=%d created (guest)", id, resp.BookingID)
	return s.view(session), nil
}

// registerAndBookLocked создает аккаунт и бронирование одной веткой
//
// Учетные данные коммитятся в сессию сразу после успешной регистрации,
// даже если бронирование затем не удалось: пользователь повторит отправку
// уже аутентифицированным, без повторной регистрации
func (s *Service) registerAndBookLocked(ctx context.Context, mu *sync.Mutex, session *domain.Session) (*models.SessionView, error) {
	id := session.ID
	form := session.State.FormData
	session.State.IsSubmitting = true
	if err := s.persist(ctx, session); err != nil {
		mu.Unlock()
		return nil, err
	}
	mu.Unlock()

	resp, branchErr := s.reconcileUC.RegisterAndBook(ctx, &reconcileAccount.RegisterRequest{Form: form})

	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	session.State.IsSubmitting = false

	switch {
	case branchErr == nil:
		s.metrics.IncReconcileOutcome(outcomeRegistered)
		s.metrics.IncBookingCreated("authenticated")
		session.Auth = resp.Auth
		session.AccountHint = nil
		session.State.BookingID = ptr.Ptr(resp.Booking.BookingID)
		s.complete(session)

		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Info("ResolveDialog: session=%s registered user=%d and created booking=%d (car saved=%t)",
			id, resp.Auth.UserID, resp.Booking.BookingID, resp.CarSaved)
		return s.view(session), nil

	case errors.Is(branchErr, reconcileAccount.ErrBookingAfterAuth):
		// Аккаунт создан, бронирование нет: коммитим учетные данные,
		// возвращаем пользователя на подтверждение
		s.metrics.IncReconcileOutcome(outcomeRegistered)
		session.Auth = resp.Auth
		session.AccountHint = nil
		session.State.VisibleDialog = domain.DialogNone
		session.State.SubmitError = ptr.Ptr(submitBooking.UserMessage(branchErr))

		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Warn("ResolveDialog: session=%s registered user=%d but booking failed: %v",
			id, resp.Auth.UserID, branchErr)
		return s.view(session), nil

	case errors.Is(branchErr, reconcileAccount.ErrAccountExists):
		// Аккаунт появился между проверкой и регистрацией: переключаемся
		// на сценарий существующего пользователя
		match, lookupErr := s.reconcileUC.Lookup(ctx, form.Recipient.Phone)
		if lookupErr != nil || !match.Exists {
			if err := s.persist(ctx, session); err != nil {
				return nil, err
			}
			return nil, branchErr
		}

		session.AccountHint = match
		session.State.VisibleDialog = domain.DialogExistingUser
		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		return s.view(session), nil

	default:
		// Диалог остается открытым, учетные данные не меняются
		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Error("ResolveDialog: session=%s registration failed: %v", id, branchErr)
		return nil, branchErr
	}
}

// loginAndBookLocked выполняет вход в найденный аккаунт и создает бронирование
func (s *Service) loginAndBookLocked(ctx context.Context, mu *sync.Mutex, session *domain.Session, password string) (*models.SessionView, error) {
	id := session.ID
	form := session.State.FormData
	user := session.AccountHint.User
	session.State.IsSubmitting = true
	if err := s.persist(ctx, session); err != nil {
		mu.Unlock()
		return nil, err
	}
	mu.Unlock()

	resp, branchErr := s.reconcileUC.LoginAndBook(ctx, &reconcileAccount.LoginRequest{
		Form:     form,
		User:     user,
		Password: password,
	})

	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	session.State.IsSubmitting = false

	switch {
	case branchErr == nil:
		s.metrics.IncReconcileOutcome(outcomeLoggedIn)
		s.metrics.IncBookingCreated("authenticated")
		session.Auth = resp.Auth
		session.AccountHint = nil
		session.State.BookingID = ptr.Ptr(resp.Booking.BookingID)
		s.complete(session)

		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Info("ResolveDialog: session=%s logged in user=%d and created booking=%d",
			id, resp.Auth.UserID, resp.Booking.BookingID)
		return s.view(session), nil

	case errors.Is(branchErr, reconcileAccount.ErrBookingAfterAuth):
		s.metrics.IncReconcileOutcome(outcomeLoggedIn)
		session.Auth = resp.Auth
		session.AccountHint = nil
		session.State.VisibleDialog = domain.DialogNone
		session.State.SubmitError = ptr.Ptr(submitBooking.UserMessage(branchErr))

		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Warn("ResolveDialog: session=%s logged in user=%d but booking failed: %v",
			id, resp.Auth.UserID, branchErr)
		return s.view(session), nil

	default:
		// Неверный пароль или недоступность входа: диалог остается открытым
		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Warn("ResolveDialog: session=%s login failed: %v", id, branchErr)
		return nil, branchErr
	}
}

// complete переводит мастер в финальное состояние успеха
func (s *Service) complete(session *domain.Session) {
	session.State.VisibleDialog = domain.DialogSuccess
	session.State.Done = true
	session.State.SubmitError = nil
}
