package get_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/pkg/types"
)

func rawSlot(start string, available, total int) domain.RawSlot {
	return domain.RawSlot{
		StartTime:      types.TimeString(start),
		AvailablePosts: available,
		TotalPosts:     total,
	}
}

func TestProcessSlots_ClientHidesFullSlots(t *testing.T) {
	raw := []domain.RawSlot{
		rawSlot("10:00", 2, 3),
		rawSlot("10:30", 0, 3),
		rawSlot("11:00", 1, 3),
	}

	got := processSlots(raw, false)

	require.Len(t, got, 2)
	assert.Equal(t, types.TimeString("10:00"), got[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), got[1].StartTime)
	for _, slot := range got {
		assert.True(t, slot.CanBook)
	}
}

func TestProcessSlots_ServiceUserSeesEverything(t *testing.T) {
	raw := []domain.RawSlot{
		rawSlot("10:00", 0, 3),
		rawSlot("10:30", 0, 3),
		rawSlot("11:00", 2, 3),
	}

	got := processSlots(raw, true)

	require.Len(t, got, 3)
	for _, slot := range got {
		assert.True(t, slot.CanBook, "service roles may book over full slots")
	}
}

func TestProcessSlots_SortsByStartTime(t *testing.T) {
	raw := []domain.RawSlot{
		rawSlot("15:30", 1, 2),
		rawSlot("09:00", 1, 2),
		rawSlot("12:00", 1, 2),
	}

	got := processSlots(raw, false)

	require.Len(t, got, 3)
	assert.Equal(t, types.TimeString("09:00"), got[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), got[1].StartTime)
	assert.Equal(t, types.TimeString("15:30"), got[2].StartTime)
}

func TestProcessSlots_EmptyFeed(t *testing.T) {
	got := processSlots(nil, false)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProcessSlots_Deterministic(t *testing.T) {
	raw := []domain.RawSlot{
		rawSlot("10:00", 1, 2),
		rawSlot("09:00", 0, 2),
		rawSlot("11:00", 2, 2),
	}

	first := processSlots(raw, false)
	second := processSlots(raw, false)

	assert.Equal(t, first, second)
}
