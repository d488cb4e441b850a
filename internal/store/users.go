package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/CGAJAY/chat-app/internal/models"
)

type Users struct {
	coll *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{coll: db.Collection("users")}
}

func (s *Users) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = id
	}
	return u, nil
}

// FindByEmail returns mongo.ErrNoDocuments when no user matches.
func (s *Users) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, err
}

func (s *Users) FindByID(ctx context.Context, id bson.ObjectID) (models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, err
}

// ListExcept returns every user but the given one, passwords excluded.
func (s *Users) ListExcept(ctx context.Context, id bson.ObjectID) ([]models.User, error) {
	cur, err := s.coll.Find(ctx,
		bson.M{"_id": bson.M{"$ne": id}},
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Users) UpdateProfilePic(ctx context.Context, id bson.ObjectID, url string) (models.User, error) {
	var u models.User
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"profilePic": url, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	return u, err
}
