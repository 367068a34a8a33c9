package domain

import (
	"errors"
	"time"
)

// ErrInvalidDuration is returned by GenerateSlots for a non-positive duration
var ErrInvalidDuration = errors.New("domain: slot duration must be positive")

// Slot is a candidate bookable half-open time interval [Start, End)
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals share at least one
// instant. Back-to-back intervals, where one ends exactly when the other
// starts, do not overlap.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Duration returns the length of the slot
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// GenerateSlots emits consecutive candidate slots of durationMinutes,
// starting at window.Start. The cursor advances by the full duration and the
// loop runs while the cursor is still before window.End, so the final slot
// may overrun the window when the duration does not evenly divide its
// length. Downstream conflict filtering still applies to that slot; callers
// that need strictly bounded slots filter on End themselves.
func GenerateSlots(window WorkingWindow, durationMinutes int) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	step := time.Duration(durationMinutes) * time.Minute

	slots := make([]Slot, 0, window.End.Sub(window.Start)/step+1)
	for cursor := window.Start; cursor.Before(window.End); cursor = cursor.Add(step) {
		slots = append(slots, Slot{Start: cursor, End: cursor.Add(step)})
	}

	return slots, nil
}

// HasConflict reports whether the candidate slot overlaps any of the given
// appointments. The caller restricts the set to confirmed appointments of
// the same professional; appointments in other states never hold the
// resource and are skipped.
func HasConflict(candidate Slot, appointments []*Appointment) bool {
	for _, apt := range appointments {
		if !apt.Status.HoldsResource() {
			continue
		}
		if candidate.Overlaps(apt.Slot()) {
			return true
		}
	}
	return false
}
