package usecase

import (
	"strings"

	"activity-booking/internal/data/entity"
)

// MaxWindowCapacity is the most people one (date, time slot) window takes.
const MaxWindowCapacity = 30

// WindowTotal sums party sizes on the exact (date, time slot) window,
// whatever the reservation status. Only the candidate slot is trimmed;
// stored slots were trimmed on write.
func WindowTotal(existing []*entity.Reservation, date, timeSlot string) int {
	timeSlot = strings.TrimSpace(timeSlot)

	total := 0
	for _, r := range existing {
		if r.Date == date && r.TimeSlot == timeSlot {
			total += r.PartySize
		}
	}
	return total
}

// WindowAccepts reports whether requested more people fit in the window.
func WindowAccepts(existing []*entity.Reservation, date, timeSlot string, requested int) bool {
	return WindowTotal(existing, date, timeSlot)+requested <= MaxWindowCapacity
}
