package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BrandID         string             `bson:"brandid" json:"brandid" binding:"required"`
	CarModelID      string             `bson:"carmodelid" json:"carmodelid" binding:"required"`
	CategoryID      string             `bson:"categoryid" json:"categoryid" binding:"required"`
	SubcategoryID   string             `bson:"subcategoryid" json:"subcategoryid"`
	Name            string             `bson:"name" json:"name" binding:"required"`
	Description     string             `bson:"description" json:"description"`
	Price           float64            `bson:"price" json:"price" binding:"required"`
	Discount        float64            `bson:"discount" json:"discount"` // porcentaje 0-100
	Amount          int64              `bson:"amount" json:"amount"`
	Active          bool               `bson:"active" json:"active"`
	Productphotourl string             `bson:"productphotourl,omitempty" json:"productphotourl,omitempty"`
	CreatedAt       time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt       time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type UpdateProduct struct {
	BrandID         string  `json:"brandid,omitempty"`
	CarModelID      string  `json:"carmodelid,omitempty"`
	CategoryID      string  `json:"categoryid,omitempty"`
	SubcategoryID   string  `json:"subcategoryid,omitempty"`
	Name            string  `json:"name,omitempty"`
	Description     string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Discount        *float64 `json:"discount,omitempty"`
	Amount          *int64   `json:"amount,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	Productphotourl string  `json:"productphotourl,omitempty"`
}

type Brand struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name" binding:"required"`
	PhotoURL string             `bson:"photourl,omitempty" json:"photourl,omitempty"`
}

// CarModel es el modelo de vehiculo al que pertenece el repuesto.
type CarModel struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BrandID string             `bson:"brandid" json:"brandid" binding:"required"`
	Name    string             `bson:"name" json:"name" binding:"required"`
}

type Category struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name" binding:"required"`
	PhotoURL string             `bson:"photourl,omitempty" json:"photourl,omitempty"`
}

type Subcategory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CategoryID string             `bson:"categoryid" json:"categoryid" binding:"required"`
	Name       string             `bson:"name" json:"name" binding:"required"`
}
