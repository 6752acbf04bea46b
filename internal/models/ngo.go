package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Ngo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NgoName     string             `bson:"ngoName" json:"ngoName"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password,omitempty" json:"-"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	City        string             `bson:"city,omitempty" json:"city,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
