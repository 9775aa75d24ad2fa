//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"activity-booking/internal/data/entity"
	"activity-booking/internal/data/repository"
	"activity-booking/pkg/database"
	"activity-booking/pkg/testutil"
	"activity-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// ReservationRepositoryTestSuite runs the same contract against every store.
type ReservationRepositoryTestSuite struct {
	suite.Suite
	open func(t *testing.T) repository.ReservationRepository
	repo repository.ReservationRepository
}

func (s *ReservationRepositoryTestSuite) SetupTest() {
	s.repo = s.open(s.T())
}

func TestPostgresReservationRepository(t *testing.T) {
	cfg := testutil.Postgres(t)

	db, err := database.InitDB(cfg)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(db.Close)

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run must be a no-op
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate again: %v", err)
	}

	suite.Run(t, &ReservationRepositoryTestSuite{
		open: func(t *testing.T) repository.ReservationRepository {
			if _, err := db.Exec(ctx, `TRUNCATE reservations`); err != nil {
				t.Fatalf("truncate: %v", err)
			}
			return repository.NewReservationRepository(db, zap.NewNop())
		},
	})
}

func TestMongoReservationRepository(t *testing.T) {
	cfg := testutil.Mongo(t)

	client, mdb, err := database.InitMongo(cfg)
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	ctx := context.Background()
	if err := repository.EnsureReservationIndexes(ctx, mdb); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	suite.Run(t, &ReservationRepositoryTestSuite{
		open: func(t *testing.T) repository.ReservationRepository {
			if _, err := mdb.Collection("reservas").DeleteMany(ctx, map[string]any{}); err != nil {
				t.Fatalf("clear: %v", err)
			}
			return repository.NewMongoReservationRepository(mdb, zap.NewNop())
		},
	})
}

func (s *ReservationRepositoryTestSuite) newReservation(date, slot string, size int) *entity.Reservation {
	return &entity.Reservation{
		ID:        utils.GenerateReservationID(),
		Name:      "Ana Souza",
		Email:     "ana@example.com",
		TaxID:     "123.456.789-09",
		Phone:     "+55 48 99999-0000",
		Activity:  "Trilha da Lagoinha",
		Date:      date,
		TimeSlot:  slot,
		PartySize: size,
		Amount:    decimal.RequireFromString("150.50"),
		Status:    entity.ReservationStatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *ReservationRepositoryTestSuite) TestCreateAndFind() {
	ctx := context.Background()
	r := s.newReservation("2026-03-20", "09:00", 4)
	r.Note = "vegetariano"
	s.Require().NoError(s.repo.Create(ctx, r))

	got, err := s.repo.FindByID(ctx, r.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(r.ID, got.ID)
	s.Equal("09:00", got.TimeSlot)
	s.Equal(4, got.PartySize)
	s.Equal("150.50", got.Amount.StringFixed(2))
	s.Equal("vegetariano", got.Note)
	s.Equal(entity.ReservationStatusPending, got.Status)
	s.True(r.CreatedAt.Equal(got.CreatedAt))
	s.Nil(got.PaidAt)

	missing, err := s.repo.FindByID(ctx, utils.GenerateReservationID())
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *ReservationRepositoryTestSuite) TestFindByWindow() {
	ctx := context.Background()
	for _, r := range []*entity.Reservation{
		s.newReservation("2026-03-20", "09:00", 4),
		s.newReservation("2026-03-20", "09:00", 6),
		s.newReservation("2026-03-20", "14:00", 10),
		s.newReservation("2026-03-21", "09:00", 10),
	} {
		s.Require().NoError(s.repo.Create(ctx, r))
	}

	got, err := s.repo.FindByWindow(ctx, "2026-03-20", "09:00")
	s.Require().NoError(err)
	s.Len(got, 2)

	total := 0
	for _, r := range got {
		total += r.PartySize
	}
	s.Equal(10, total)
}

func (s *ReservationRepositoryTestSuite) TestMarkPaidKeepsFirstPaidAt() {
	ctx := context.Background()
	r := s.newReservation("2026-03-20", "09:00", 4)
	s.Require().NoError(s.repo.Create(ctx, r))

	first := time.Date(2026, 3, 10, 13, 30, 0, 0, time.UTC)
	s.Require().NoError(s.repo.MarkPaid(ctx, r.ID, first))
	s.Require().NoError(s.repo.MarkPaid(ctx, r.ID, first.Add(time.Hour)))

	got, err := s.repo.FindByID(ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(entity.ReservationStatusPaid, got.Status)
	s.Require().NotNil(got.PaidAt)
	s.True(first.Equal(*got.PaidAt))
}

func (s *ReservationRepositoryTestSuite) TestMarkPaidUnknown() {
	err := s.repo.MarkPaid(context.Background(), utils.GenerateReservationID(), time.Now())
	s.ErrorIs(err, repository.ErrReservationNotFound)
}
