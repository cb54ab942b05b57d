package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautysalon/salon-api/internal/model"
)

func TestAvailableSlotsEmptyDay(t *testing.T) {
	slots := availableSlots(nil)

	require.Len(t, slots, 22)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "19:30", slots[len(slots)-1])
}

func TestAvailableSlotsExcludesCoveredStarts(t *testing.T) {
	booked := []model.TimeRange{{Start: "10:00", End: "11:30"}}

	slots := availableSlots(booked)
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	assert.NotContains(t, slots, "11:00")
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "11:30")
}

func TestAvailableSlotsBoundaryIsFree(t *testing.T) {
	// A booking ending exactly on a slot start leaves that slot open.
	booked := []model.TimeRange{{Start: "09:00", End: "10:00"}}

	slots := availableSlots(booked)
	assert.Contains(t, slots, "10:00")
	assert.NotContains(t, slots, "09:30")
}

func TestAddMinutes(t *testing.T) {
	end, err := addMinutes("10:00", 90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", end)

	end, err = addMinutes("09:05", 30)
	require.NoError(t, err)
	assert.Equal(t, "09:35", end)

	_, err = addMinutes("25:00", 30)
	assert.Error(t, err)
}

func TestTimeRangeOverlaps(t *testing.T) {
	a := model.TimeRange{Start: "10:00", End: "11:00"}

	assert.True(t, a.Overlaps(model.TimeRange{Start: "10:30", End: "11:30"}))
	assert.True(t, a.Overlaps(model.TimeRange{Start: "09:30", End: "10:30"}))
	assert.True(t, a.Overlaps(model.TimeRange{Start: "09:00", End: "12:00"}))
	assert.False(t, a.Overlaps(model.TimeRange{Start: "11:00", End: "12:00"}))
	assert.False(t, a.Overlaps(model.TimeRange{Start: "09:00", End: "10:00"}))
}
