package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)

func res(id string, status Status, start, end Hour) *Reservation {
	return &Reservation{
		ID:        id,
		CourtID:   "1",
		Date:      day,
		StartTime: start,
		EndTime:   end,
		Duration:  int(end - start),
		Status:    status,
	}
}

func TestCalculateAvailabilityEmpty(t *testing.T) {
	a := CalculateAvailability("1", day, nil)

	assert.Equal(t, "1", a.CourtID)
	assert.Equal(t, day, a.Date)
	require.Len(t, a.Slots, 17)
	for i, s := range a.Slots {
		assert.Equal(t, FirstSlot+Hour(i), s.Time)
		assert.True(t, s.Available)
		assert.Empty(t, s.ReservationID)
	}
}

func TestCalculateAvailabilityOnlyApprovedBlocks(t *testing.T) {
	existing := []*Reservation{
		res("1", StatusApproved, 14, 16),
		res("2", StatusPending, 10, 11),
		res("3", StatusRejected, 8, 9),
		res("4", StatusCancelled, 18, 20),
		res("5", StatusCompleted, 6, 7),
	}

	a := CalculateAvailability("1", day, existing)

	for _, s := range a.Slots {
		switch s.Time {
		case 14, 15:
			assert.False(t, s.Available, s.Time.String())
			assert.Equal(t, "1", s.ReservationID)
		default:
			assert.True(t, s.Available, s.Time.String())
			assert.Empty(t, s.ReservationID)
		}
	}
}

func TestCalculateAvailabilityIgnoresOtherCourtsAndDates(t *testing.T) {
	other := res("1", StatusApproved, 6, 23)
	other.CourtID = "2"
	tomorrow := res("2", StatusApproved, 6, 23)
	tomorrow.Date = day.AddDate(0, 0, 1)

	a := CalculateAvailability("1", day, []*Reservation{other, tomorrow})
	for _, s := range a.Slots {
		assert.True(t, s.Available)
	}
}

func TestCalculateAvailabilityLastSlot(t *testing.T) {
	a := CalculateAvailability("1", day, []*Reservation{res("9", StatusApproved, 22, 23)})

	last, ok := a.Slot(22)
	require.True(t, ok)
	assert.False(t, last.Available)
	assert.Equal(t, "9", last.ReservationID)

	prev, _ := a.Slot(21)
	assert.True(t, prev.Available)

	_, ok = a.Slot(23)
	assert.False(t, ok)
}

func TestCalculateAvailabilityIsDeterministic(t *testing.T) {
	existing := []*Reservation{res("1", StatusApproved, 9, 12), res("2", StatusPending, 12, 13)}

	first := CalculateAvailability("1", day, existing)
	second := CalculateAvailability("1", day, existing)
	assert.Equal(t, first, second)
}
