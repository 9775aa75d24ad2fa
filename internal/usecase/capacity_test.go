package usecase_test

import (
	"testing"

	"activity-booking/internal/data/entity"
	"activity-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func window(date, slot string, sizes ...int) []*entity.Reservation {
	out := make([]*entity.Reservation, 0, len(sizes))
	for _, n := range sizes {
		out = append(out, &entity.Reservation{Date: date, TimeSlot: slot, PartySize: n})
	}
	return out
}

func TestWindowAccepts(t *testing.T) {
	tests := []struct {
		name      string
		existing  []*entity.Reservation
		date      string
		slot      string
		requested int
		want      bool
	}{
		{
			name:      "empty window",
			date:      "2026-03-20",
			slot:      "09:00",
			requested: 4,
			want:      true,
		},
		{
			name:      "exactly thirty accepted",
			existing:  window("2026-03-20", "09:00", 20, 6),
			date:      "2026-03-20",
			slot:      "09:00",
			requested: 4,
			want:      true,
		},
		{
			name:      "thirty one rejected",
			existing:  window("2026-03-20", "09:00", 28),
			date:      "2026-03-20",
			slot:      "09:00",
			requested: 3,
			want:      false,
		},
		{
			name:      "single party over capacity",
			date:      "2026-03-20",
			slot:      "09:00",
			requested: 31,
			want:      false,
		},
		{
			name:      "other slot ignored",
			existing:  window("2026-03-20", "14:00", 30),
			date:      "2026-03-20",
			slot:      "09:00",
			requested: 30,
			want:      true,
		},
		{
			name:      "other date ignored",
			existing:  window("2026-03-21", "09:00", 30),
			date:      "2026-03-20",
			slot:      "09:00",
			requested: 30,
			want:      true,
		},
		{
			name:      "candidate slot is trimmed",
			existing:  window("2026-03-20", "09:00", 28),
			date:      "2026-03-20",
			slot:      "  09:00 ",
			requested: 3,
			want:      false,
		},
		{
			name:      "slot match is case sensitive",
			existing:  window("2026-03-20", "Manhã", 30),
			date:      "2026-03-20",
			slot:      "manhã",
			requested: 1,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.WindowAccepts(tt.existing, tt.date, tt.slot, tt.requested))
		})
	}
}

func TestWindowTotalCountsEveryStatus(t *testing.T) {
	existing := window("2026-03-20", "09:00", 5, 7)
	existing[0].Status = entity.ReservationStatusPending
	existing[1].Status = entity.ReservationStatusPaid

	assert.Equal(t, 12, usecase.WindowTotal(existing, "2026-03-20", "09:00"))
}
