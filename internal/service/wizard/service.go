package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/internal/infra/storage/sessions"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard/models"
	getSlots "github.com/avdeevlv/TSP-WizardService/internal/usecase/get_slots"
	"github.com/avdeevlv/TSP-WizardService/pkg/phonenum"
)

// Options настройки поведения мастера
type Options struct {
	SessionTTL        time.Duration
	PhoneLookupDelay  time.Duration
	PhoneLookupDigits int
}

// Service контроллер мастера бронирования
//
// Единственный владелец WizardState: шаги UI запрашивают переходы через его
// операции, напрямую ActiveStepIndex и VisibleDialog никто не меняет.
// Операции над одной сессией сериализуются per-session мьютексом: у формы
// в каждый момент ровно один писатель
type Service struct {
	store        SessionStore
	slotsUC      SlotsUseCase
	submitUC     SubmitUseCase
	reconcileUC  ReconcileUseCase
	availability AvailabilityClient
	debouncer    *phoneDebouncer
	timeProvider TimeProvider
	logger       Logger
	metrics      Metrics
	opts         Options

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewService создает новый экземпляр контроллера мастера
func NewService(
	store SessionStore,
	slotsUC SlotsUseCase,
	submitUC SubmitUseCase,
	reconcileUC ReconcileUseCase,
	availability AvailabilityClient,
	logger Logger,
	metrics Metrics,
	opts Options,
) *Service {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Service{
		store:        store,
		slotsUC:      slotsUC,
		submitUC:     submitUC,
		reconcileUC:  reconcileUC,
		availability: availability,
		debouncer:    newPhoneDebouncer(opts.PhoneLookupDelay),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      metrics,
		opts:         opts,
		locks:        make(map[string]*sync.Mutex),
	}
}

// sessionLock возвращает мьютекс сессии, создавая его при необходимости
func (s *Service) sessionLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if mu, ok := s.locks[id]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	s.locks[id] = mu
	return mu
}

func (s *Service) dropLock(id string) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	delete(s.locks, id)
}

// CreateSession создает сессию мастера
//
// Если входящая навигация уже удовлетворяет ранним шагам, мастер
// перематывается вперед, но не дальше шага выбора даты и времени и никогда
// через незаполненный шаг: логика перемотки зеркалит валидацию шагов
func (s *Service) CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionView, error) {
	now := s.timeProvider.Now()

	session := &domain.Session{
		ID: uuid.NewString(),
		State: domain.WizardState{
			ActiveStepIndex: 0,
			VisibleDialog:   domain.DialogNone,
		},
		Auth:      req.Auth,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.opts.SessionTTL),
	}

	if req.Prefill != nil {
		session.State.FormData = *req.Prefill

		dateTimeIndex := domain.StepIndex(domain.StepDateTime)
		target := FirstIncompleteStep(&session.State.FormData)
		if target > dateTimeIndex {
			target = dateTimeIndex
		}
		session.State.ActiveStepIndex = target
	}

	if err := s.store.Create(ctx, session); err != nil {
		s.logger.Error("CreateSession: failed to store session: %v", err)
		return nil, fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
	}

	s.metrics.IncSessionsStarted()
	s.logger.Info("CreateSession: session=%s created at step=%d (authenticated=%t)",
		session.ID, session.State.ActiveStepIndex, session.Auth.Authenticated)

	return s.view(session), nil
}

// GetSession возвращает текущее состояние сессии
func (s *Service) GetSession(ctx context.Context, id string) (*models.SessionView, error) {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// CancelSession завершает сессию без бронирования (уход со страницы мастера)
// Отложенный поиск по телефону отменяется; завершившиеся после отмены
// операции не найдут сессию и не изменят ничье состояние
func (s *Service) CancelSession(ctx context.Context, id string) error {
	s.debouncer.Cancel(id)

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("CancelSession: failed to delete session=%s: %v", id, err)
		return fmt.Errorf("%w: failed to delete session: %v", ErrInternal, err)
	}

	s.dropLock(id)
	s.logger.Info("CancelSession: session=%s cancelled", id)
	return nil
}

// UpdateForm применяет частичное обновление формы от активного шага
//
// Валидация шагов пересчитывается на каждом изменении, а не только на "next":
// правка ранних полей ретроактивно инвалидирует более поздние шаги.
// Смена категории, города или точки сбрасывает дату и время: их нужно
// выбрать заново под новый контекст
func (s *Service) UpdateForm(ctx context.Context, id string, patch *models.FormPatch) (*models.SessionView, error) {
	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.State.Done {
		return nil, ErrAlreadyDone
	}

	prevPhone := session.State.FormData.Recipient.Phone
	s.applyPatch(session, patch)

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	// Ввод телефона запускает отложенный поиск аккаунта: подсказка сверки
	// будет готова к моменту отправки. Ошибки поиска не блокируют мастер
	newPhone := session.State.FormData.Recipient.Phone
	if !session.Auth.Authenticated && newPhone != prevPhone {
		s.schedulePhoneLookup(id, newPhone)
	}

	return s.view(session), nil
}

// applyPatch накладывает patch на форму с каскадной инвалидацией
func (s *Service) applyPatch(session *domain.Session, patch *models.FormPatch) {
	form := &session.State.FormData
	selectionChanged := false

	if patch.ServiceCategoryID != nil {
		form.ServiceCategoryID = patch.ServiceCategoryID
		selectionChanged = true
	}
	if patch.CityID != nil {
		form.CityID = patch.CityID
		selectionChanged = true
	}
	if patch.ServicePointID != nil {
		form.ServicePointID = patch.ServicePointID
		selectionChanged = true
	}

	if selectionChanged {
		// Слоты другой точки/категории не переносимы: дата и время
		// выбираются заново, кеш слотов сбрасывается
		form.BookingDate = ""
		form.StartTime = ""
		session.CachedSlots = nil
		session.SlotsKey = nil
		session.SlotsDegraded = false
	}

	if patch.BookingDate != nil && *patch.BookingDate != form.BookingDate {
		form.BookingDate = *patch.BookingDate
		form.StartTime = ""
	}
	if patch.StartTime != nil {
		form.StartTime = *patch.StartTime
	}

	if patch.Recipient != nil {
		if patch.Recipient.FirstName != nil {
			form.Recipient.FirstName = *patch.Recipient.FirstName
		}
		if patch.Recipient.LastName != nil {
			form.Recipient.LastName = *patch.Recipient.LastName
		}
		if patch.Recipient.Phone != nil {
			form.Recipient.Phone = *patch.Recipient.Phone
			// Новый телефон делает старую подсказку сверки недействительной
			session.AccountHint = nil
		}
		if patch.Recipient.Email != nil {
			form.Recipient.Email = patch.Recipient.Email
		}
	}

	if patch.CarTypeID != nil {
		form.CarTypeID = patch.CarTypeID
	}
	if patch.CarBrand != nil {
		form.CarBrand = patch.CarBrand
	}
	if patch.CarModel != nil {
		form.CarModel = patch.CarModel
	}
	if patch.LicensePlate != nil {
		form.LicensePlate = *patch.LicensePlate
	}

	if patch.SavedCar != nil {
		s.applySavedCar(session, patch.SavedCar)
	}

	if patch.Services != nil {
		form.Services = *patch.Services
	}
	if patch.Notes != nil {
		form.Notes = patch.Notes
	}
}

// applySavedCar заполняет поля автомобиля из сохраненной карточки клиента
//
// Если у карточки есть тип автомобиля, мастер перематывается сразу к шагу
// подтверждения. Карточка без типа оставляет пользователя на шаге выбора
// типа: тип обязателен и выбирается вручную
func (s *Service) applySavedCar(session *domain.Session, car *models.SavedCarPatch) {
	form := &session.State.FormData
	form.CarTypeID = car.CarTypeID
	form.CarBrand = car.Brand
	form.CarModel = car.Model
	form.LicensePlate = car.LicensePlate

	if car.CarTypeID == nil {
		return
	}

	carTypeIndex := domain.StepIndex(domain.StepCarType)
	reviewIndex := domain.ReviewStepIndex()
	if session.State.ActiveStepIndex == carTypeIndex && StepComplete(domain.StepCarType, form) {
		session.State.ActiveStepIndex = reviewIndex
		s.logger.Info("UpdateForm: session=%s fast-forwarded to review after saved car selection", session.ID)
	}
}

// Navigate выполняет переход между шагами
//
// next гейтится валидностью активного шага; back всегда разрешен выше
// нулевого; jump не дальше current+1, недопустимый jump является no-op,
// состояние не меняется
func (s *Service) Navigate(ctx context.Context, id string, req *models.NavigateRequest) (*models.SessionView, error) {
	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.State.Done {
		return nil, ErrAlreadyDone
	}

	current := session.State.ActiveStepIndex
	target := current

	switch req.Action {
	case models.ActionNext:
		if current >= domain.ReviewStepIndex() {
			// За последним шагом ничего нет
			break
		}
		if !StepComplete(session.State.ActiveStep(), &session.State.FormData) {
			return nil, ErrStepIncomplete
		}
		target = current + 1

	case models.ActionBack:
		if current > 0 {
			target = current - 1
		}

	case models.ActionJump:
		if req.Index < 0 || req.Index > current+1 {
			// Прыжок вперед через шаг запрещен: no-op
			break
		}
		if req.Index == current+1 && !StepComplete(session.State.ActiveStep(), &session.State.FormData) {
			return nil, ErrStepIncomplete
		}
		target = req.Index

	default:
		return nil, fmt.Errorf("%w: unknown navigate action %q", ErrInvalidInput, req.Action)
	}

	if target != current {
		session.State.ActiveStepIndex = target
		if err := s.persist(ctx, session); err != nil {
			return nil, err
		}
	}

	return s.view(session), nil
}

// LoadSlots загружает и обрабатывает слоты для текущего выбора формы
//
// Ключ запроса (точка, категория, дата) фиксируется до сетевого вызова.
// Если за время загрузки выбор изменился, результат отбрасывается:
// устаревшие слоты никогда не перезаписывают состояние более нового выбора
func (s *Service) LoadSlots(ctx context.Context, id string) (*models.SlotsView, error) {
	mu := s.sessionLock(id)
	mu.Lock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		mu.Unlock()
		return nil, err
	}

	key, ok := session.State.FormData.SlotKey()
	if !ok {
		mu.Unlock()
		return nil, ErrSelectionIncomplete
	}
	isServiceUser := session.Auth.IsServiceUser()

	// Сетевой вызов без удержания блокировки: пользователь может продолжать
	// работать с мастером, пока слоты загружаются
	mu.Unlock()

	resp, err := s.slotsUC.Execute(ctx, &getSlots.Request{
		ServicePointID: key.ServicePointID,
		CategoryID:     key.CategoryID,
		Date:           key.Date,
		IsServiceUser:  isServiceUser,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
	}

	if resp.Degraded {
		s.metrics.IncSlotFetchDegraded()
	}

	mu.Lock()
	defer mu.Unlock()

	session, err = s.loadSession(ctx, id)
	if err != nil {
		// Сессия отменена, пока шла загрузка: результат никому не нужен
		return nil, err
	}

	currentKey, ok := session.State.FormData.SlotKey()
	if !ok || currentKey != key {
		s.logger.Info("LoadSlots: session=%s stale result for %s discarded (selection changed)",
			id, key.Date)
		return &models.SlotsView{Date: key.Date, Stale: true}, nil
	}

	session.CachedSlots = resp.Slots
	session.SlotsKey = &key
	session.SlotsDegraded = resp.Degraded
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	return &models.SlotsView{
		Date:     key.Date,
		Slots:    resp.Slots,
		Degraded: resp.Degraded,
	}, nil
}

// GetDayDetails возвращает дневную сводку занятости для календаря
func (s *Service) GetDayDetails(ctx context.Context, id string, date string) (*domain.DayDetails, error) {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	form := &session.State.FormData
	if form.ServicePointID == nil || form.ServiceCategoryID == nil || strings.TrimSpace(date) == "" {
		return nil, ErrSelectionIncomplete
	}

	details, err := s.availability.GetDayDetails(ctx, *form.ServicePointID, *form.ServiceCategoryID, date)
	if err != nil {
		s.logger.Warn("GetDayDetails: session=%s degraded for date=%s: %v", id, date, err)
		// Сводка информационная: недоступность фида не ломает календарь
		return &domain.DayDetails{IsWorking: true}, nil
	}

	return details, nil
}

// Reset начинает новое бронирование в той же сессии ("записаться еще раз")
// Аутентификация сохраняется, форма и состояние мастера сбрасываются
func (s *Service) Reset(ctx context.Context, id string) (*models.SessionView, error) {
	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.State = domain.WizardState{
		ActiveStepIndex: 0,
		VisibleDialog:   domain.DialogNone,
	}
	session.AccountHint = nil
	session.CachedSlots = nil
	session.SlotsKey = nil
	session.SlotsDegraded = false

	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Reset: session=%s restarted", id)
	return s.view(session), nil
}

// StartExpirySweep запускает фоновую очистку истекших сессий
func (s *Service) StartExpirySweep(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				removed, err := s.store.DeleteExpired(context.Background(), s.timeProvider.Now())
				if err != nil {
					s.logger.Error("ExpirySweep: failed to delete expired sessions: %v", err)
					continue
				}
				if removed > 0 {
					s.logger.Info("ExpirySweep: removed %d expired sessions", removed)
				}
			case <-stop:
				s.debouncer.Stop()
				return
			}
		}
	}()
}

// schedulePhoneLookup откладывает поиск аккаунта по введенному телефону
// Поиск уходит только после паузы ввода и только для достаточно длинного
// номера; результат сохраняется как транзиентная подсказка сверки
func (s *Service) schedulePhoneLookup(id, phone string) {
	if phonenum.DigitCount(phone) < s.opts.PhoneLookupDigits {
		s.debouncer.Cancel(id)
		return
	}

	s.debouncer.Schedule(id, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		match, err := s.reconcileUC.Lookup(ctx, phone)
		if err != nil {
			// Недоступность проверки никогда не блокирует мастер:
			// пользователь продолжит как гость
			s.logger.Warn("PhoneLookup: session=%s lookup failed, continuing without hint: %v", id, err)
			return
		}

		mu := s.sessionLock(id)
		mu.Lock()
		defer mu.Unlock()

		session, err := s.loadSession(ctx, id)
		if err != nil {
			// Сессия уже отменена: результат отбрасывается
			return
		}
		if session.State.FormData.Recipient.Phone != phone {
			// Телефон успели поменять: подсказка устарела
			return
		}

		session.AccountHint = match
		if err := s.persist(ctx, session); err != nil {
			s.logger.Warn("PhoneLookup: session=%s failed to store hint: %v", id, err)
		}
	})
}

// loadSession читает сессию из хранилища с маппингом ошибок
func (s *Service) loadSession(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("loadSession: storage error for session=%s: %v", id, err)
		return nil, fmt.Errorf("%w: storage error: %v", ErrInternal, err)
	}
	return session, nil
}

// persist сохраняет сессию с обновленными метками времени
func (s *Service) persist(ctx context.Context, session *domain.Session) error {
	now := s.timeProvider.Now()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(s.opts.SessionTTL)

	if err := s.store.Update(ctx, session); err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("persist: failed to update session=%s: %v", session.ID, err)
		return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) view(session *domain.Session) *models.SessionView {
	return models.FromSession(session, StepCompleteness(&session.State.FormData))
}
