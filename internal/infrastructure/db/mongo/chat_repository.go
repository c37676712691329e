package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

const chatCollection = "chat_messages"

type ChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{coll: db.Collection(chatCollection)}
}

type chatDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID string             `bson:"customer_id"`
	WorkerID   string             `bson:"worker_id"`
	Sender     string             `bson:"sender"`
	Text       string             `bson:"text"`
	CreatedAt  int64              `bson:"created_at"`
}

func (d *chatDoc) toDomain() *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:         d.ID.Hex(),
		CustomerID: d.CustomerID,
		WorkerID:   d.WorkerID,
		Sender:     d.Sender,
		Text:       d.Text,
		CreatedAt:  unixToTime(d.CreatedAt),
	}
}

func (r *ChatRepository) Append(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	doc := chatDoc{
		CustomerID: msg.CustomerID,
		WorkerID:   msg.WorkerID,
		Sender:     msg.Sender,
		Text:       msg.Text,
		CreatedAt:  msg.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *msg
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// ListThread returns the pair's messages oldest first.
func (r *ChatRepository) ListThread(ctx context.Context, customerID, workerID string) ([]*domain.ChatMessage, error) {
	filter := bson.M{"customer_id": customerID, "worker_id": workerID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []*domain.ChatMessage
	for cursor.Next(ctx) {
		var doc chatDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		msgs = append(msgs, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	return msgs, nil
}

func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "worker_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
