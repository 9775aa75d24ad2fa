package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"activity-booking/internal/data/entity"
	"activity-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrReservationNotFound = errors.New("reservation not found")

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	// FindByID returns nil, nil when the reservation does not exist.
	FindByID(ctx context.Context, id string) (*entity.Reservation, error)
	// FindByWindow returns every reservation on the exact (date, time slot), any status.
	FindByWindow(ctx context.Context, date, timeSlot string) ([]*entity.Reservation, error)
	// MarkPaid sets status paid. paid_at keeps the first confirmation time.
	// Returns ErrReservationNotFound when no reservation has the id.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, name, email, tax_id, phone, activity, date, time_slot, party_size,
		amount_cents, note, status, created_at, paid_at`

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Name,
		reservation.Email,
		reservation.TaxID,
		reservation.Phone,
		reservation.Activity,
		reservation.Date,
		reservation.TimeSlot,
		reservation.PartySize,
		toCents(reservation.Amount),
		reservation.Note,
		reservation.Status,
		reservation.CreatedAt,
		reservation.PaidAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.ID, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id, err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByWindow(ctx context.Context, date, timeSlot string) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE date = $1 AND time_slot = $2
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, date, timeSlot)
	if err != nil {
		r.log.Error("Failed to find reservations by window",
			zap.Error(err),
			zap.String("date", date),
			zap.String("time_slot", timeSlot),
		)
		return nil, fmt.Errorf("find reservations for %s %s: %w", date, timeSlot, err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	query := `
		UPDATE reservations
		SET status = $2, paid_at = COALESCE(paid_at, $3)
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, entity.ReservationStatusPaid, paidAt)
	if err != nil {
		r.log.Error("Failed to mark reservation paid",
			zap.Error(err),
			zap.String("reservation_id", id),
		)
		return fmt.Errorf("mark reservation %s paid: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s: %w", id, ErrReservationNotFound)
	}

	return nil
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var (
		reservation entity.Reservation
		amountCents int64
	)
	err := row.Scan(
		&reservation.ID,
		&reservation.Name,
		&reservation.Email,
		&reservation.TaxID,
		&reservation.Phone,
		&reservation.Activity,
		&reservation.Date,
		&reservation.TimeSlot,
		&reservation.PartySize,
		&amountCents,
		&reservation.Note,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	reservation.Amount = fromCents(amountCents)
	return &reservation, nil
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
