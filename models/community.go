package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Question struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID  string             `bson:"productid" json:"productid" binding:"required"`
	UserID     string             `bson:"userid" json:"userid"`
	Text       string             `bson:"text" json:"text" binding:"required"`
	Answer     string             `bson:"answer,omitempty" json:"answer,omitempty"`
	AnsweredAt time.Time          `bson:"answered_at,omitempty" json:"answered_at,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID string             `bson:"productid" json:"productid" binding:"required"`
	UserID    string             `bson:"userid" json:"userid"`
	Stars     int64              `bson:"stars" json:"stars" binding:"required"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type Visit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Page      string             `bson:"page" json:"page"`
	IP        string             `bson:"ip" json:"ip"`
	Device    string             `bson:"device" json:"device"`
	Day       string             `bson:"day" json:"day"` // yyyy-mm-dd
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// VisitDaily es el acumulado por dia que genera el cron nocturno.
type VisitDaily struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Day   string             `bson:"day" json:"day"`
	Total int64              `bson:"total" json:"total"`
	Pages map[string]int64   `bson:"pages" json:"pages"`
}
