package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(hour, minute, durationMinutes int) Slot {
	start := time.Date(2025, 6, 16, hour, minute, 0, 0, time.UTC)
	return Slot{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Slot
		want bool
	}{
		{"identical", slotAt(10, 0, 60), slotAt(10, 0, 60), true},
		{"partial", slotAt(10, 0, 60), slotAt(10, 30, 60), true},
		{"contained", slotAt(10, 0, 120), slotAt(10, 30, 30), true},
		{"back to back", slotAt(10, 0, 60), slotAt(11, 0, 60), false},
		{"disjoint", slotAt(10, 0, 60), slotAt(14, 0, 60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestGenerateSlots_EvenDivision(t *testing.T) {
	window := WorkingWindow{
		Start: time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
	}

	slots, err := GenerateSlots(window, 60)

	require.NoError(t, err)
	require.Len(t, slots, 3)
	for i, slot := range slots {
		assert.Equal(t, window.Start.Add(time.Duration(i)*time.Hour), slot.Start)
		assert.Equal(t, time.Hour, slot.Duration())
	}
}

func TestGenerateSlots_FinalSlotOverrunsWindow(t *testing.T) {
	window := WorkingWindow{
		Start: time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC),
	}

	slots, err := GenerateSlots(window, 60)

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, window.Start.Add(time.Hour), slots[1].Start)
	assert.True(t, slots[1].End.After(window.End))
}

func TestGenerateSlots_StrictlyIncreasingStarts(t *testing.T) {
	window := WorkingWindow{
		Start: time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC),
	}

	slots, err := GenerateSlots(window, 45)

	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].Start.After(slots[i-1].Start))
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	window := WorkingWindow{
		Start: time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
	}

	for _, duration := range []int{0, -30} {
		_, err := GenerateSlots(window, duration)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	}
}

func TestHasConflict(t *testing.T) {
	candidate := slotAt(10, 0, 60)

	confirmed := &Appointment{
		StartTime: candidate.Start.Add(30 * time.Minute),
		EndTime:   candidate.End.Add(30 * time.Minute),
		Status:    StatusConfirmed,
	}
	pending := &Appointment{
		StartTime: candidate.Start,
		EndTime:   candidate.End,
		Status:    StatusPending,
	}
	canceled := &Appointment{
		StartTime: candidate.Start,
		EndTime:   candidate.End,
		Status:    StatusCanceled,
	}

	assert.True(t, HasConflict(candidate, []*Appointment{confirmed}))
	// Only confirmed appointments hold the professional's time
	assert.False(t, HasConflict(candidate, []*Appointment{pending, canceled}))
	assert.False(t, HasConflict(candidate, nil))
}
