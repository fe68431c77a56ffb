package wizard

import (
	"context"
	"time"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	getSlots "github.com/avdeevlv/TSP-WizardService/internal/usecase/get_slots"
	reconcileAccount "github.com/avdeevlv/TSP-WizardService/internal/usecase/reconcile_account"
	submitBooking "github.com/avdeevlv/TSP-WizardService/internal/usecase/submit_booking"
)

// SessionStore интерфейс хранилища сессий мастера
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SlotsUseCase интерфейс загрузки и обработки слотов
type SlotsUseCase interface {
	Execute(ctx context.Context, req *getSlots.Request) (*getSlots.Response, error)
}

// SubmitUseCase интерфейс отправки бронирования
type SubmitUseCase interface {
	ExecuteGuest(ctx context.Context, req *submitBooking.Request) (*submitBooking.Response, error)
	ExecuteAuthenticated(ctx context.Context, req *submitBooking.Request) (*submitBooking.Response, error)
	SaveCar(ctx context.Context, req *submitBooking.Request) error
}

// ReconcileUseCase интерфейс сверки аккаунта по телефону
type ReconcileUseCase interface {
	Lookup(ctx context.Context, phone string) (*domain.AccountMatch, error)
	RegisterAndBook(ctx context.Context, req *reconcileAccount.RegisterRequest) (*reconcileAccount.Response, error)
	LoginAndBook(ctx context.Context, req *reconcileAccount.LoginRequest) (*reconcileAccount.Response, error)
}

// AvailabilityClient интерфейс для дневной сводки занятости
type AvailabilityClient interface {
	GetDayDetails(ctx context.Context, servicePointID, categoryID int64, date string) (*domain.DayDetails, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс счетчиков мастера
type Metrics interface {
	IncSessionsStarted()
	IncBookingCreated(path string)
	IncReconcileOutcome(outcome string)
	IncSlotFetchDegraded()
}

// NoopMetrics используется, когда сбор метрик выключен конфигурацией
type NoopMetrics struct{}

func (NoopMetrics) IncSessionsStarted()                {}
func (NoopMetrics) IncBookingCreated(path string)      {}
func (NoopMetrics) IncReconcileOutcome(outcome string) {}
func (NoopMetrics) IncSlotFetchDegraded()              {}
