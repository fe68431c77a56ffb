package get_slots

import "github.com/avdeevlv/TSP-WizardService/internal/domain"

// Request модель запроса на получение слотов для шага выбора даты и времени
type Request struct {
	ServicePointID  int64  // ID точки обслуживания
	CategoryID      int64  // ID категории услуг
	Date            string // Дата в формате YYYY-MM-DD
	DurationMinutes *int   // Фильтр по длительности услуги (опционально)
	IsServiceUser   bool   // Сервисная роль видит все слоты, включая занятые
}

// Key возвращает ключ фида для этого запроса
func (r *Request) Key() domain.SlotKey {
	return domain.SlotKey{
		ServicePointID: r.ServicePointID,
		CategoryID:     r.CategoryID,
		Date:           r.Date,
	}
}

// Response модель ответа со списком обработанных слотов
type Response struct {
	Key   domain.SlotKey         // Ключ, для которого загружались слоты
	Slots []domain.ProcessedSlot // Обработанные слоты, по возрастанию времени

	// Фид был недоступен: список пуст, шаг остается рабочим,
	// пользователю показывается предупреждение
	Degraded bool
}
