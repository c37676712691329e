package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

const bookingCollection = "bookings"

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingCollection)}
}

type bookingDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID    string             `bson:"customer_id"`
	CustomerName  string             `bson:"customer_name"`
	WorkerID      string             `bson:"worker_id"`
	WorkerName    string             `bson:"worker_name"`
	Date          string             `bson:"date"`
	Slot          string             `bson:"slot"`
	Status        string             `bson:"status"`
	Price         float64            `bson:"price"`
	PaymentMethod string             `bson:"payment_method"`
	Address       string             `bson:"address"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (d *bookingDoc) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:            d.ID.Hex(),
		CustomerID:    d.CustomerID,
		CustomerName:  d.CustomerName,
		WorkerID:      d.WorkerID,
		WorkerName:    d.WorkerName,
		Date:          d.Date,
		Slot:          d.Slot,
		Status:        domain.BookingStatus(d.Status),
		Price:         d.Price,
		PaymentMethod: d.PaymentMethod,
		Address:       d.Address,
		CreatedAt:     unixToTime(d.CreatedAt),
		UpdatedAt:     unixToTime(d.UpdatedAt),
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	doc := bookingDoc{
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		WorkerID:      b.WorkerID,
		WorkerName:    b.WorkerName,
		Date:          b.Date,
		Slot:          b.Slot,
		Status:        string(b.Status),
		Price:         b.Price,
		PaymentMethod: b.PaymentMethod,
		Address:       b.Address,
		CreatedAt:     b.CreatedAt.Unix(),
		UpdatedAt:     b.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	var doc bookingDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return doc.toDomain(), nil
}

// BookedSlots returns the slot labels held by non-cancelled bookings for
// one worker on one calendar date.
func (r *BookingRepository) BookedSlots(ctx context.Context, workerID, date string) ([]string, error) {
	filter := bson.M{
		"worker_id": workerID,
		"date":      date,
		"status":    bson.M{"$ne": string(domain.BookingCancelled)},
	}

	opts := options.Find().SetProjection(bson.M{"slot": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []string
	for cursor.Next(ctx) {
		var doc struct {
			Slot string `bson:"slot"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode slot: %w", err)
		}
		slots = append(slots, doc.Slot)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("booked slots: %w", err)
	}
	return slots, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookingNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *BookingRepository) ListByWorker(ctx context.Context, workerID string) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{"worker_id": workerID})
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domain.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*domain.Booking
	for cursor.Next(ctx) {
		var doc bookingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		bookings = append(bookings, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// HasUnlockedBooking reports whether the pair has at least one booking in
// accepted or completed state. Backs the chat gate.
func (r *BookingRepository) HasUnlockedBooking(ctx context.Context, customerID, workerID string) (bool, error) {
	filter := bson.M{
		"customer_id": customerID,
		"worker_id":   workerID,
		"status": bson.M{"$in": []string{
			string(domain.BookingAccepted),
			string(domain.BookingCompleted),
		}},
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("chat gate lookup: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the lookup indexes for the bookings collection.
// Slot uniqueness is not enforced here: a unique index cannot exclude
// cancelled bookings, so the service guards creation with a Redis lock
// plus a read-back of the occupied slots.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "worker_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
