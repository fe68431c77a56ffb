package domain

import "time"

// Session серверная сессия мастера бронирования
// Создается при открытии мастера, уничтожается при успехе или явной отмене;
// единственный durable артефакт создается на стороне портала (бронирование)
type Session struct {
	ID    string      `json:"id"`
	State WizardState `json:"state"`
	Auth  AuthState   `json:"auth"`

	// Транзиентная подсказка сверки аккаунта (результат debounce-поиска по телефону)
	AccountHint *AccountMatch `json:"account_hint,omitempty"`

	// Кеш обработанных слотов и ключ, для которого они загружались
	CachedSlots []ProcessedSlot `json:"cached_slots,omitempty"`
	SlotsKey    *SlotKey        `json:"slots_key,omitempty"`

	// Слоты были получены в режиме деградации (фид недоступен)
	SlotsDegraded bool `json:"slots_degraded,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired проверяет, истекла ли сессия
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SlotsCurrent проверяет, что кеш слотов соответствует текущему выбору формы
func (s *Session) SlotsCurrent() bool {
	key, ok := s.State.FormData.SlotKey()
	if !ok || s.SlotsKey == nil {
		return false
	}
	return *s.SlotsKey == key
}
