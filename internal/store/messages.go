package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/CGAJAY/chat-app/internal/models"
)

type Messages struct {
	coll *mongo.Collection
}

func NewMessages(db *mongo.Database) *Messages {
	return &Messages{coll: db.Collection("messages")}
}

func (s *Messages) Create(ctx context.Context, msg models.Message) (models.Message, error) {
	msg.CreatedAt = time.Now().UTC()

	res, err := s.coll.InsertOne(ctx, msg)
	if err != nil {
		return models.Message{}, err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		msg.ID = id
	}
	return msg, nil
}

// Conversation returns both directions of the exchange between two users,
// oldest first.
func (s *Messages) Conversation(ctx context.Context, a, b bson.ObjectID) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"senderId": a, "receiverId": b},
		bson.M{"senderId": b, "receiverId": a},
	}}

	cur, err := s.coll.Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
