package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Config guarda la tasa del dolar y los parametros de envio. Las filas
// nunca se editan en sitio: cada cambio crea una nueva y la vigente es
// la mas reciente por created_at.
type Config struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DolarRate             float64            `bson:"dolar_rate" json:"dolarRate" binding:"required"`
	FreeShippingThreshold float64            `bson:"free_shipping_threshold" json:"freeShippingThreshold"`
	ShippingPrice         float64            `bson:"shipping_price" json:"shippingPrice"`
	CreatedAt             time.Time          `bson:"created_at" json:"created_at"`
}

type PaymentType struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name" binding:"required"`
}

type PaymentMethod struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PaymentTypeID string             `bson:"paymenttypeid" json:"paymenttypeid" binding:"required"`
	Name          string             `bson:"name" json:"name" binding:"required"`
	OwnerName     string             `bson:"owner_name,omitempty" json:"owner_name,omitempty"`
	OwnerID       string             `bson:"owner_id,omitempty" json:"owner_id,omitempty"`
	AccountNumber string             `bson:"account_number,omitempty" json:"account_number,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Active        bool               `bson:"active" json:"active"`
}
