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

const workerCollection = "worker_profiles"

type WorkerRepository struct {
	coll *mongo.Collection
}

func NewWorkerRepository(db *mongo.Database) *WorkerRepository {
	return &WorkerRepository{coll: db.Collection(workerCollection)}
}

type workerDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	OwnerAccountID   string             `bson:"owner_account_id"`
	FullName         string             `bson:"full_name"`
	City             string             `bson:"city"`
	Experience       int                `bson:"experience"`
	HourlyRate       float64            `bson:"hourly_rate"`
	Bio              string             `bson:"bio"`
	Services         []string           `bson:"services"`
	ProfileCompleted bool               `bson:"profile_completed"`
	Image            string             `bson:"image,omitempty"`
	Rating           float64            `bson:"rating"`
	ReviewCount      int                `bson:"review_count"`
	CreatedAt        int64              `bson:"created_at"`
	UpdatedAt        int64              `bson:"updated_at"`
}

func (d *workerDoc) toDomain() *domain.WorkerProfile {
	return &domain.WorkerProfile{
		ID:               d.ID.Hex(),
		OwnerAccountID:   d.OwnerAccountID,
		FullName:         d.FullName,
		City:             d.City,
		Experience:       d.Experience,
		HourlyRate:       d.HourlyRate,
		Bio:              d.Bio,
		Services:         d.Services,
		ProfileCompleted: d.ProfileCompleted,
		Image:            d.Image,
		Rating:           d.Rating,
		ReviewCount:      d.ReviewCount,
		CreatedAt:        unixToTime(d.CreatedAt),
		UpdatedAt:        unixToTime(d.UpdatedAt),
	}
}

// Upsert replaces the mutable profile fields keyed by the owning account.
// Rating, review count and created_at survive the update untouched.
func (r *WorkerRepository) Upsert(ctx context.Context, profile *domain.WorkerProfile) (*domain.WorkerProfile, error) {
	now := time.Now().UTC().Unix()

	update := bson.M{
		"$set": bson.M{
			"full_name":         profile.FullName,
			"city":              profile.City,
			"experience":        profile.Experience,
			"hourly_rate":       profile.HourlyRate,
			"bio":               profile.Bio,
			"services":          profile.Services,
			"profile_completed": profile.ProfileCompleted,
			"image":             profile.Image,
			"updated_at":        now,
		},
		"$setOnInsert": bson.M{
			"owner_account_id": profile.OwnerAccountID,
			"rating":           0.0,
			"review_count":     0,
			"created_at":       now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc workerDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"owner_account_id": profile.OwnerAccountID}, update, opts).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("upsert worker profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *WorkerRepository) FindByOwner(ctx context.Context, ownerAccountID string) (*domain.WorkerProfile, error) {
	var doc workerDoc
	if err := r.coll.FindOne(ctx, bson.M{"owner_account_id": ownerAccountID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("find worker by owner: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*domain.WorkerProfile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrWorkerNotFound
	}

	var doc workerDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("find worker: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns completed profiles, newest first, optionally filtered by a
// service tag (tags are stored lowercase).
func (r *WorkerRepository) List(ctx context.Context, serviceTag string) ([]*domain.WorkerProfile, error) {
	filter := bson.M{"profile_completed": true}
	if serviceTag != "" {
		filter["services"] = serviceTag
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*domain.WorkerProfile
	for cursor.Next(ctx) {
		var doc workerDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode worker: %w", err)
		}
		profiles = append(profiles, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	return profiles, nil
}

// EnsureIndexes creates the unique owner index (one profile per account)
// and the service tag index used by directory queries.
func (r *WorkerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_account_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "services", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
