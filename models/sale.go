package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Sale struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID       string             `bson:"productid" json:"productid"`
	BuyerID         string             `bson:"buyerid" json:"buyerid"`
	PaymentMethodID string             `bson:"paymentmethodid" json:"paymentmethodid"`
	OrderID         string             `bson:"orderid,omitempty" json:"orderid,omitempty"`
	Quantity        int64              `bson:"quantity" json:"quantity"`
	UnitPrice       float64            `bson:"unit_price" json:"unit_price"`
	OriginalPrice   float64            `bson:"original_price" json:"original_price"`
	Discount        float64            `bson:"discount" json:"discount"`
	DailyRate       float64            `bson:"daily_rate" json:"daily_rate"` // tasa del dia al momento de la venta
	Status          string             `bson:"status" json:"status"`
	Rating          int64              `bson:"rating,omitempty" json:"rating,omitempty"`
	Reference       string             `bson:"reference,omitempty" json:"reference,omitempty"`
	ReceiptImage    string             `bson:"receipt_image,omitempty" json:"receipt_image,omitempty"`
	SaleDate        time.Time          `bson:"sale_date" json:"sale_date"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BuyerID         string             `bson:"buyerid" json:"buyerid"`
	PaymentMethodID string             `bson:"paymentmethodid" json:"paymentmethodid"`
	ShippingAddress string             `bson:"shippingaddress,omitempty" json:"shippingaddress,omitempty"`
	ShippingCost    float64            `bson:"shippingcost" json:"shippingcost"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	ViewToken       string             `bson:"view_token" json:"view_token"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SaleInput es el cuerpo de POST /sales (venta individual).
type SaleInput struct {
	ProductID       string   `json:"productId" binding:"required"`
	Quantity        int64    `json:"quantity"`
	UnitPrice       *float64 `json:"unitPrice,omitempty"`
	Discount        *float64 `json:"discount,omitempty"`
	Rating          *int64   `json:"rating,omitempty"`
	PaymentMethodID string   `json:"paymentMethodId"`
	Reference       string   `json:"reference,omitempty"`
}

// CheckoutItem es una linea del carrito en POST /sales/checkout.
// Price y Discount son opcionales: si el cliente los manda, deben
// coincidir exactamente con los valores guardados del producto.
type CheckoutItem struct {
	ProductID string   `json:"productId"`
	Quantity  int64    `json:"quantity"`
	Price     *float64 `json:"price,omitempty"`
	Discount  *float64 `json:"discount,omitempty"`
}

type CheckoutInput struct {
	Items           []CheckoutItem `json:"items"`
	PaymentMethodID string         `json:"paymentMethodId"`
	ShippingAddress string         `json:"shippingAddress"`
	Reference       string         `json:"reference,omitempty"`
}
