package wizard

import (
	"sync"
	"time"
)

// phoneDebouncer откладывает поиск аккаунта по телефону, пока пользователь
// печатает: запрос уходит только после паузы ввода, каждый новый ввод
// отменяет предыдущий отложенный запрос
type phoneDebouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer // ключом служит ID сессии
}

func newPhoneDebouncer(delay time.Duration) *phoneDebouncer {
	return &phoneDebouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule откладывает выполнение fn; предыдущий отложенный вызов
// для той же сессии отменяется
func (d *phoneDebouncer) Schedule(sessionID string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[sessionID]; ok {
		t.Stop()
	}

	d.timers[sessionID] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, sessionID)
		d.mu.Unlock()
		fn()
	})
}

// Cancel отменяет отложенный вызов для сессии (отмена мастера / unmount)
func (d *phoneDebouncer) Cancel(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[sessionID]; ok {
		t.Stop()
		delete(d.timers, sessionID)
	}
}

// Stop отменяет все отложенные вызовы (остановка сервиса)
func (d *phoneDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
}
