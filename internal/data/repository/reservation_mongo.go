package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"activity-booking/internal/data/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const reservationCollection = "reservas"

// reservationDocument is the stored shape; amounts are kept in cents.
type reservationDocument struct {
	ID          string     `bson:"_id"`
	Name        string     `bson:"name"`
	Email       string     `bson:"email"`
	TaxID       string     `bson:"tax_id"`
	Phone       string     `bson:"phone"`
	Activity    string     `bson:"activity"`
	Date        string     `bson:"date"`
	TimeSlot    string     `bson:"time_slot"`
	PartySize   int        `bson:"party_size"`
	AmountCents int64      `bson:"amount_cents"`
	Note        string     `bson:"note"`
	Status      string     `bson:"status"`
	CreatedAt   time.Time  `bson:"created_at"`
	PaidAt      *time.Time `bson:"paid_at,omitempty"`
}

type mongoReservationRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoReservationRepository(db *mongo.Database, log *zap.Logger) ReservationRepository {
	return &mongoReservationRepository{
		coll: db.Collection(reservationCollection),
		log:  log.With(zap.String("repository", "reservation_mongo")),
	}
}

// EnsureReservationIndexes creates the (date, time_slot) index used by window queries.
func EnsureReservationIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(reservationCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time_slot", Value: 1}},
		Options: options.Index().SetName("window"),
	})
	if err != nil {
		return fmt.Errorf("create reservation indexes: %w", err)
	}
	return nil
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	if _, err := r.coll.InsertOne(ctx, toDocument(reservation)); err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.ID, err)
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	var doc reservationDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id, err)
	}
	return fromDocument(&doc), nil
}

func (r *mongoReservationRepository) FindByWindow(ctx context.Context, date, timeSlot string) ([]*entity.Reservation, error) {
	filter := bson.M{"date": date, "time_slot": timeSlot}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		r.log.Error("Failed to find reservations by window",
			zap.Error(err),
			zap.String("date", date),
			zap.String("time_slot", timeSlot),
		)
		return nil, fmt.Errorf("find reservations for %s %s: %w", date, timeSlot, err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}

	reservations := make([]*entity.Reservation, 0, len(docs))
	for i := range docs {
		reservations = append(reservations, fromDocument(&docs[i]))
	}
	return reservations, nil
}

func (r *mongoReservationRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "status", Value: string(entity.ReservationStatusPaid)},
			{Key: "paid_at", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$paid_at", paidAt}}}},
		}}},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.log.Error("Failed to mark reservation paid",
			zap.Error(err),
			zap.String("reservation_id", id),
		)
		return fmt.Errorf("mark reservation %s paid: %w", id, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("reservation %s: %w", id, ErrReservationNotFound)
	}

	return nil
}

func toDocument(r *entity.Reservation) reservationDocument {
	return reservationDocument{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		TaxID:       r.TaxID,
		Phone:       r.Phone,
		Activity:    r.Activity,
		Date:        r.Date,
		TimeSlot:    r.TimeSlot,
		PartySize:   r.PartySize,
		AmountCents: toCents(r.Amount),
		Note:        r.Note,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		PaidAt:      r.PaidAt,
	}
}

func fromDocument(doc *reservationDocument) *entity.Reservation {
	return &entity.Reservation{
		ID:        doc.ID,
		Name:      doc.Name,
		Email:     doc.Email,
		TaxID:     doc.TaxID,
		Phone:     doc.Phone,
		Activity:  doc.Activity,
		Date:      doc.Date,
		TimeSlot:  doc.TimeSlot,
		PartySize: doc.PartySize,
		Amount:    fromCents(doc.AmountCents),
		Note:      doc.Note,
		Status:    entity.ReservationStatus(doc.Status),
		CreatedAt: doc.CreatedAt,
		PaidAt:    doc.PaidAt,
	}
}
