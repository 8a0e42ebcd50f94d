package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kaltre10/repuestos-oriente-sub001/models"
)

func TestLineUnitPrice(t *testing.T) {
	assert.Equal(t, 90.0, lineUnitPrice(100, 10))
	assert.Equal(t, 19.99, lineUnitPrice(19.99, 0))
	assert.Equal(t, 0.0, lineUnitPrice(50, 100))
	// Redondeo a dos decimales.
	assert.Equal(t, 33.33, lineUnitPrice(49.99, 33.33))
}

func TestShippingCostFor(t *testing.T) {
	cfg := models.Config{FreeShippingThreshold: 100, ShippingPrice: 8.5}

	assert.Equal(t, 8.5, shippingCostFor(99.99, cfg))
	// Llegar al umbral ya libera el envio.
	assert.Equal(t, 0.0, shippingCostFor(100, cfg))
	assert.Equal(t, 0.0, shippingCostFor(250, cfg))
}

func TestBuildSaleRecords(t *testing.T) {
	input := models.CheckoutInput{
		Items: []models.CheckoutItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		PaymentMethodID: "pm1",
		Reference:       "ref-123",
	}
	products := map[string]models.Product{
		"p1": {Name: "Amortiguador", Price: 100, Discount: 10},
		"p2": {Name: "Bombilla", Price: 4.50, Discount: 0},
	}
	saleDate := time.Now()

	sales := buildSaleRecords(input, products, "buyer1", 36.5, "order1", "recibo.jpg", saleDate)
	require.Len(t, sales, 2)

	first := sales[0]
	assert.Equal(t, "p1", first.ProductID)
	assert.Equal(t, "buyer1", first.BuyerID)
	assert.Equal(t, "order1", first.OrderID)
	assert.Equal(t, int64(2), first.Quantity)
	assert.Equal(t, 90.0, first.UnitPrice)
	assert.Equal(t, 100.0, first.OriginalPrice)
	assert.Equal(t, 10.0, first.Discount)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, "ref-123", first.Reference)
	assert.Equal(t, "recibo.jpg", first.ReceiptImage)

	// La tasa se captura una sola vez y se copia a todas las lineas.
	for _, s := range sales {
		assert.Equal(t, 36.5, s.DailyRate)
		assert.Equal(t, saleDate, s.SaleDate)
	}
	assert.Equal(t, 4.50, sales[1].UnitPrice)
}

func TestCheckoutSubtotal(t *testing.T) {
	input := models.CheckoutInput{
		Items: []models.CheckoutItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	}
	products := map[string]models.Product{
		"p1": {Price: 100, Discount: 10}, // 90.00 x 2 = 180.00
		"p2": {Price: 4.50, Discount: 0}, // 4.50 x 3 = 13.50
	}

	assert.Equal(t, 193.50, checkoutSubtotal(input, products))
}

func TestSaleConfigRequiresRate(t *testing.T) {
	// La venta individual se rechaza sin configuración registrada.
	_, err := saleConfig(models.Config{}, mongo.ErrNoDocuments)
	assert.ErrorIs(t, err, errConfigMissing)

	cfg, err := saleConfig(models.Config{DolarRate: 36.5}, nil)
	require.NoError(t, err)
	assert.Equal(t, 36.5, cfg.DolarRate)

	// Otros errores de lectura pasan tal cual.
	_, err = saleConfig(models.Config{}, assert.AnError)
	assert.Equal(t, assert.AnError, err)
}

func TestCheckoutConfigDefaultsToOne(t *testing.T) {
	// El carrito asume tasa 1 cuando no hay configuración.
	cfg, err := checkoutConfig(models.Config{}, mongo.ErrNoDocuments)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.DolarRate)

	// Con la configuración por defecto el envío queda en cero.
	assert.Equal(t, 0.0, shippingCostFor(0, cfg))
	assert.Equal(t, 0.0, shippingCostFor(50, cfg))

	cfg, err = checkoutConfig(models.Config{DolarRate: 40, FreeShippingThreshold: 100, ShippingPrice: 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, 40.0, cfg.DolarRate)
	assert.Equal(t, 5.0, shippingCostFor(50, cfg))

	_, err = checkoutConfig(models.Config{}, assert.AnError)
	assert.Equal(t, assert.AnError, err)
}

func TestRestockItemsIgnoresInvalidIDs(t *testing.T) {
	// Un id no hexadecimal se salta sin tocar la coleccion; con la
	// coleccion sin inicializar esto no debe entrar a mongo.
	items := []models.CheckoutItem{
		{ProductID: "no-es-hex", Quantity: 2},
		{ProductID: "tampoco", Quantity: 1},
	}
	assert.NotPanics(t, func() {
		restockItems(context.Background(), items)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.234))
	assert.Equal(t, 1.24, round2(1.236))
	assert.Equal(t, 100.0, round2(100))
}
