package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
    ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
    Name            string             `bson:"name" json:"name"`
    Lastname        string             `bson:"lastname" json:"lastname"`
    Email           string             `bson:"email" json:"email"`
    Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
    Password        string             `bson:"password,omitempty" json:"password,omitempty"`
    Role            string             `bson:"role" json:"role"`
    Provider        string             `bson:"provider" json:"provider"` // "local" o "google"
    PhotoURL        string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
    RecoveryCode    string             `bson:"recovery_code,omitempty" json:"-"`
    RecoveryExpires time.Time          `bson:"recovery_expires,omitempty" json:"-"`
    CreatedAt       time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

type Session struct {
    ID        primitive.ObjectID `bson:"_id,omitempty"`
    UserID    primitive.ObjectID `bson:"user_id"`
    Role      string             `bson:"role"`
    IP        string             `bson:"ip"`
    Device    string             `bson:"device"`
    Timestamp time.Time          `bson:"timestamp"`
}
