package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaltre10/repuestos-oriente-sub001/models"
)

func fptr(v float64) *float64 { return &v }

func TestCheckStock(t *testing.T) {
	product := models.Product{Name: "Bujía NGK", Amount: 3}

	assert.NoError(t, checkStock(product, 1))
	assert.NoError(t, checkStock(product, 3))

	err := checkStock(product, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Disponible 3")
	assert.Contains(t, err.Error(), "solicitado 5")
}

func TestCheckSalePriceTolerance(t *testing.T) {
	product := models.Product{Price: 100, Discount: 10} // efectivo 90.00

	assert.NoError(t, checkSalePrice(product, fptr(90.00), nil))
	assert.NoError(t, checkSalePrice(product, fptr(90.01), nil))
	assert.NoError(t, checkSalePrice(product, fptr(89.99), nil))

	err := checkSalePrice(product, fptr(95.00), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPriceTampered)

	err = checkSalePrice(product, fptr(90.05), nil)
	assert.ErrorIs(t, err, ErrPriceTampered)

	// El esperado se redondea antes de comparar: 29.99 con 15% da
	// 25.4915, el cliente puede mandar 25.49 o 25.50.
	noisy := models.Product{Price: 29.99, Discount: 15}
	assert.NoError(t, checkSalePrice(noisy, fptr(25.49), nil))
	assert.NoError(t, checkSalePrice(noisy, fptr(25.50), nil))
	assert.ErrorIs(t, checkSalePrice(noisy, fptr(25.52), nil), ErrPriceTampered)
}

func TestInactiveProductNotPurchasable(t *testing.T) {
	inactive := models.Product{Name: "Radiador", Price: 80, Amount: 4, Active: false}

	err := checkActive(inactive)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// En el carrito la linea se rechaza aunque precio y stock cuadren.
	item := models.CheckoutItem{ProductID: "x", Quantity: 1, Price: fptr(80)}
	assert.ErrorIs(t, checkCheckoutItem(inactive, item), ErrProductNotFound)

	active := inactive
	active.Active = true
	assert.NoError(t, checkActive(active))
	assert.NoError(t, checkCheckoutItem(active, item))
}

func TestCheckSalePriceOptionalFields(t *testing.T) {
	product := models.Product{Price: 100, Discount: 10}

	// Sin precio ni descuento no hay nada que cotejar.
	assert.NoError(t, checkSalePrice(product, nil, nil))

	// El descuento enviado debe ser el guardado, sin tolerancia.
	assert.NoError(t, checkSalePrice(product, nil, fptr(10)))
	err := checkSalePrice(product, nil, fptr(15))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPriceTampered)
}

func TestCheckCheckoutItemExactMatch(t *testing.T) {
	product := models.Product{Name: "Filtro de aceite", Price: 25.50, Discount: 5, Amount: 10, Active: true}

	ok := models.CheckoutItem{ProductID: "x", Quantity: 2, Price: fptr(25.50), Discount: fptr(5)}
	assert.NoError(t, checkCheckoutItem(product, ok))

	// En el carrito no hay tolerancia: 0.01 de diferencia ya es rechazo.
	off := models.CheckoutItem{ProductID: "x", Quantity: 2, Price: fptr(25.49)}
	err := checkCheckoutItem(product, off)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPriceTampered)

	badDiscount := models.CheckoutItem{ProductID: "x", Quantity: 2, Discount: fptr(10)}
	assert.ErrorIs(t, checkCheckoutItem(product, badDiscount), ErrPriceTampered)

	// Precio y descuento son opcionales.
	bare := models.CheckoutItem{ProductID: "x", Quantity: 1}
	assert.NoError(t, checkCheckoutItem(product, bare))
}

func TestCheckCheckoutItemQuantityAndStock(t *testing.T) {
	product := models.Product{Name: "Correa", Price: 12, Amount: 2, Active: true}

	assert.ErrorIs(t, checkCheckoutItem(product, models.CheckoutItem{Quantity: 0}), ErrInvalidQuantity)
	assert.ErrorIs(t, checkCheckoutItem(product, models.CheckoutItem{Quantity: -1}), ErrInvalidQuantity)
	assert.ErrorIs(t, checkCheckoutItem(product, models.CheckoutItem{Quantity: 3}), ErrInsufficientStock)
	assert.NoError(t, checkCheckoutItem(product, models.CheckoutItem{Quantity: 2}))
}

func TestParseCheckoutItemsNativeArray(t *testing.T) {
	raw := json.RawMessage(`[{"productId":"a","quantity":2},{"productId":"b","quantity":1,"price":9.99}]`)
	items, err := parseCheckoutItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ProductID)
	assert.Equal(t, int64(2), items[0].Quantity)
	require.NotNil(t, items[1].Price)
	assert.Equal(t, 9.99, *items[1].Price)
}

func TestParseCheckoutItemsEncodedString(t *testing.T) {
	raw := json.RawMessage(`"[{\"productId\":\"a\",\"quantity\":2}]"`)
	items, err := parseCheckoutItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ProductID)
}

func TestParseCheckoutItemsMalformed(t *testing.T) {
	cases := []json.RawMessage{
		nil,
		json.RawMessage(``),
		json.RawMessage(`123`),
		json.RawMessage(`{"productId":"a"}`),
		json.RawMessage(`"no es json"`),
		json.RawMessage(`"{\"productId\":\"a\"}"`),
	}
	for _, raw := range cases {
		_, err := parseCheckoutItems(raw)
		assert.ErrorIs(t, err, ErrMalformedItems, "raw: %s", string(raw))
	}
}

func TestParseCheckoutItemsString(t *testing.T) {
	items, err := parseCheckoutItemsString(`[{"productId":"a","quantity":1}]`)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = parseCheckoutItemsString(`no-json`)
	assert.ErrorIs(t, err, ErrMalformedItems)
}

func TestRespondIntegrityErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{ErrProductNotFound, 404},
		{ErrInsufficientStock, 400},
		{ErrPriceTampered, 400},
		{ErrMalformedItems, 400},
		{ErrInvalidQuantity, 400},
		{ErrInvalidRating, 400},
		{assert.AnError, 500},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondIntegrityError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, "err: %v", tc.err)

		var resp models.ApiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, tc.status, resp.Status)
	}
}
