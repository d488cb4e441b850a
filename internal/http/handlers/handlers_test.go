package handlers

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/CGAJAY/chat-app/internal/models"
)

var errStoreDown = errors.New("store down")

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[bson.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[bson.ObjectID]models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, u models.User) (models.User, error) {
	u.ID = bson.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (s *fakeUserStore) FindByID(_ context.Context, id bson.ObjectID) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (s *fakeUserStore) ListExcept(_ context.Context, id bson.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		if u.ID != id {
			u.Password = ""
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) UpdateProfilePic(_ context.Context, id bson.ObjectID, url string) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	u.ProfilePic = url
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u, nil
}

// fakeMessageStore is an in-memory MessageStore.
type fakeMessageStore struct {
	msgs    []models.Message
	failing bool
}

func (s *fakeMessageStore) Create(_ context.Context, msg models.Message) (models.Message, error) {
	if s.failing {
		return models.Message{}, errStoreDown
	}
	msg.ID = bson.NewObjectID()
	msg.CreatedAt = time.Now().UTC()
	s.msgs = append(s.msgs, msg)
	return msg, nil
}

func (s *fakeMessageStore) Conversation(_ context.Context, a, b bson.ObjectID) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.msgs {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}
