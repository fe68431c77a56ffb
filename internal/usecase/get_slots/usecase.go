package get_slots

import (
	"context"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

// UseCase use case загрузки и обработки слотов для шага выбора даты и времени
type UseCase struct {
	availability AvailabilityClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityClient, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		logger:       logger,
	}
}

// Execute загружает сырой фид и превращает его в список доступных слотов
//
// Ошибка фида не прерывает шаг выбора времени: ответом будет пустой список
// с флагом Degraded, а предупреждение показывает уже UI
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: point=%d, category=%d, date=%s, serviceUser=%t",
		req.ServicePointID, req.CategoryID, req.Date, req.IsServiceUser)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем сырой фид доступности
	raw, err := uc.availability.GetSlots(ctx, req.ServicePointID, req.CategoryID, req.Date, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetSlots: feed unavailable for point=%d, date=%s, degrading to empty list: %v",
			req.ServicePointID, req.Date, err)
		return &Response{
			Key:      req.Key(),
			Slots:    []domain.ProcessedSlot{},
			Degraded: true,
		}, nil
	}

	// 3. Фильтрация по роли и сортировка
	slots := processSlots(raw, req.IsServiceUser)

	uc.logger.Info("GetSlots: %d raw -> %d processed slots for point=%d, date=%s",
		len(raw), len(slots), req.ServicePointID, req.Date)

	return &Response{
		Key:   req.Key(),
		Slots: slots,
	}, nil
}
