package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName   string        `bson:"fullName" json:"fullName"`
	Email      string        `bson:"email" json:"email"`
	Password   string        `bson:"password" json:"-"`
	ProfilePic string        `bson:"profilePic" json:"profilePic"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

type Message struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	SenderID   bson.ObjectID `bson:"senderId" json:"senderId"`
	ReceiverID bson.ObjectID `bson:"receiverId" json:"receiverId"`
	Text       string        `bson:"text,omitempty" json:"text,omitempty"`
	Image      string        `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
}
