package domain

import "github.com/avdeevlv/TSP-WizardService/pkg/types"

// RawSlot элемент сырого фида доступности от сервиса расписаний
type RawSlot struct {
	StartTime       types.TimeString `json:"start_time"`
	AvailablePosts  int              `json:"available_posts"`
	TotalPosts      int              `json:"total_posts"`
	BookingsCount   int              `json:"bookings_count"`
	DurationMinutes int              `json:"duration_minutes"`
	IsAvailable     bool             `json:"is_available"`
	OccupancyStatus string           `json:"occupancy_status"`
}

// IsFull returns true if the slot has no available posts
func (s *RawSlot) IsFull() bool {
	return s.AvailablePosts <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *RawSlot) OccupancyRate() float64 {
	if s.TotalPosts == 0 {
		return 0
	}
	occupied := s.TotalPosts - s.AvailablePosts
	return float64(occupied) / float64(s.TotalPosts) * 100
}

// ProcessedSlot слот после обработки: отфильтрован по роли и дополнен флагом CanBook
type ProcessedSlot struct {
	RawSlot
	CanBook bool `json:"can_book"`
}

// SlotKey ключ запроса фида доступности
// Используется для отбрасывания устаревших ответов: результат загрузки
// применяется только если ключ все еще совпадает с текущим выбором формы
type SlotKey struct {
	ServicePointID int64
	CategoryID     int64
	Date           string
}

// DayDetails дневная сводка занятости сервисной точки
type DayDetails struct {
	TotalSlots          int     `json:"total_slots"`
	OccupiedSlots       int     `json:"occupied_slots"`
	AvailableSlots      int     `json:"available_slots"`
	OccupancyPercentage float64 `json:"occupancy_percentage"`
	IsWorking           bool    `json:"is_working"`
}
