package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"activity-booking/internal/data/entity"
	"activity-booking/internal/data/repository"
	"activity-booking/pkg/lock"
)

// fakeReservationRepo keeps reservations in memory with the same paid-at
// semantics as the real stores.
type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]*entity.Reservation

	createErr error
	findErr   error
	windowErr error
	markErr   error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string]*entity.Reservation)}
}

func (f *fakeReservationRepo) Create(_ context.Context, r *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id string) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}
	r, ok := f.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationRepo) FindByWindow(_ context.Context, date, timeSlot string) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.windowErr != nil {
		return nil, f.windowErr
	}
	var out []*entity.Reservation
	for _, r := range f.reservations {
		if r.Date == date && r.TimeSlot == timeSlot {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) MarkPaid(_ context.Context, id string, paidAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.markErr != nil {
		return f.markErr
	}
	r, ok := f.reservations[id]
	if !ok {
		return fmt.Errorf("mark paid %s: %w", id, repository.ErrReservationNotFound)
	}
	r.Status = entity.ReservationStatusPaid
	if r.PaidAt == nil {
		t := paidAt
		r.PaidAt = &t
	}
	return nil
}

func (f *fakeReservationRepo) get(id string) *entity.Reservation {
	r, _ := f.FindByID(context.Background(), id)
	return r
}

func (f *fakeReservationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}

// recordingLocker remembers the keys it was asked for.
type recordingLocker struct {
	mu       sync.Mutex
	keys     []string
	released int
	err      error
}

func (l *recordingLocker) Acquire(_ context.Context, key string) (lock.Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}
