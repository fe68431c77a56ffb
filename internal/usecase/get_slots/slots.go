package get_slots

import (
	"sort"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

// processSlots превращает сырой фид в список слотов для выбора времени
//
// Политика:
//   - сервисные роли видят ВСЕ слоты и могут бронировать любой (override);
//   - клиенты и гости видят только слоты со свободными постами: занятые
//     скрываются целиком, а не показываются задизейбленными;
//   - пустой фид дает пустой список, это не ошибка.
//
// Результат всегда отсортирован по возрастанию времени начала.
// Фиксированный формат HH:MM делает лексикографическое сравнение корректным.
// Функция чистая: одинаковый вход всегда дает одинаковый результат
func processSlots(raw []domain.RawSlot, isServiceUser bool) []domain.ProcessedSlot {
	processed := make([]domain.ProcessedSlot, 0, len(raw))

	for _, slot := range raw {
		if isServiceUser {
			processed = append(processed, domain.ProcessedSlot{RawSlot: slot, CanBook: true})
			continue
		}

		if slot.IsFull() {
			continue
		}
		processed = append(processed, domain.ProcessedSlot{RawSlot: slot, CanBook: true})
	}

	sort.SliceStable(processed, func(i, j int) bool {
		return processed[i].StartTime.IsBefore(processed[j].StartTime)
	})

	return processed
}
