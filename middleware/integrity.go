package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"
)

// Tolerancia absoluta para el precio unitario de la venta individual.
// El checkout de carrito NO tiene tolerancia: exige igualdad exacta.
const priceTolerance = 0.01

func round2(v float64) float64 { return math.Round(v*100) / 100 }

var (
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPriceTampered     = errors.New("precio no coincide con el producto")
	ErrMalformedItems    = errors.New("items no es un arreglo válido")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor a cero")
	ErrInvalidRating     = errors.New("la calificación debe estar entre 1 y 5")
)

// checkStock valida que el producto tenga existencia para la cantidad pedida.
func checkStock(product models.Product, quantity int64) error {
	if product.Amount < quantity {
		return fmt.Errorf("%w: %s. Disponible %d, solicitado %d",
			ErrInsufficientStock, product.Name, product.Amount, quantity)
	}
	return nil
}

// checkActive trata un producto inactivo como inexistente: ya no
// aparece en el catálogo público y tampoco se puede comprar por id.
func checkActive(product models.Product) error {
	if !product.Active {
		return fmt.Errorf("%w: %s", ErrProductNotFound, product.Name)
	}
	return nil
}

// checkSalePrice aplica la regla de la venta individual: el precio
// unitario enviado debe acercarse a price*(1-discount/100) dentro de la
// tolerancia. El descuento, si viene, debe ser el guardado.
func checkSalePrice(product models.Product, unitPrice, discount *float64) error {
	if discount != nil && *discount != product.Discount {
		return fmt.Errorf("%w: descuento enviado %.2f, guardado %.2f",
			ErrPriceTampered, *discount, product.Discount)
	}
	if unitPrice == nil {
		return nil
	}
	// El esperado se redondea a dos decimales antes de comparar; sin
	// esto el ruido de coma flotante rechaza precios en el borde de la
	// tolerancia (100 con 10% da 90.000000...01, no 90.00).
	expected := round2(product.Price * (1 - product.Discount/100))
	if math.Abs(*unitPrice-expected) > priceTolerance {
		return fmt.Errorf("%w: precio enviado %.2f, esperado %.2f",
			ErrPriceTampered, *unitPrice, expected)
	}
	return nil
}

// checkCheckoutItem aplica la regla del carrito: existencia, stock y,
// si el cliente mandó precio o descuento, igualdad exacta con lo guardado.
func checkCheckoutItem(product models.Product, item models.CheckoutItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := checkActive(product); err != nil {
		return err
	}
	if err := checkStock(product, item.Quantity); err != nil {
		return err
	}
	if item.Price != nil && *item.Price != product.Price {
		return fmt.Errorf("%w: precio enviado %.2f, guardado %.2f",
			ErrPriceTampered, *item.Price, product.Price)
	}
	if item.Discount != nil && *item.Discount != product.Discount {
		return fmt.Errorf("%w: descuento enviado %.2f, guardado %.2f",
			ErrPriceTampered, *item.Discount, product.Discount)
	}
	return nil
}

// parseCheckoutItems acepta el campo items como arreglo JSON nativo o
// como string JSON (compatibilidad con form-data).
func parseCheckoutItems(raw json.RawMessage) ([]models.CheckoutItem, error) {
	if len(raw) == 0 {
		return nil, ErrMalformedItems
	}

	var items []models.CheckoutItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, ErrMalformedItems
	}
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, ErrMalformedItems
	}
	return items, nil
}

func parseCheckoutItemsString(encoded string) ([]models.CheckoutItem, error) {
	var items []models.CheckoutItem
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, ErrMalformedItems
	}
	return items, nil
}

func findProductByID(ctx context.Context, id string) (models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	var product models.Product
	err = config.ProductCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return models.Product{}, err
	}
	return product, nil
}

// RespondIntegrityError traduce los errores de validación al sobre HTTP.
// Lo no clasificado se registra y sale como 500 genérico.
func RespondIntegrityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		utils.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrPriceTampered),
		errors.Is(err, ErrMalformedItems),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidRating):
		utils.Fail(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("error inesperado validando la orden: %v", err)
		utils.Fail(c, http.StatusInternalServerError, "Error interno validando la orden")
	}
}

// ValidateSaleIntegrity revalida la venta individual contra el producto
// guardado antes de que el handler toque la base. No escribe nada: deja
// la entrada y el producto en el contexto para el handler.
func ValidateSaleIntegrity() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.SaleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Cuerpo de la venta inválido: "+err.Error())
			return
		}

		if input.Quantity <= 0 {
			RespondIntegrityError(c, ErrInvalidQuantity)
			return
		}
		if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
			RespondIntegrityError(c, ErrInvalidRating)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		product, err := findProductByID(ctx, input.ProductID)
		if err != nil {
			RespondIntegrityError(c, err)
			return
		}
		if err := checkActive(product); err != nil {
			RespondIntegrityError(c, err)
			return
		}
		if err := checkStock(product, input.Quantity); err != nil {
			RespondIntegrityError(c, err)
			return
		}
		if err := checkSalePrice(product, input.UnitPrice, input.Discount); err != nil {
			RespondIntegrityError(c, err)
			return
		}

		c.Set("saleInput", input)
		c.Set("saleProduct", product)
		c.Next()
	}
}

// ValidateCheckoutIntegrity hace lo mismo para el carrito completo.
// Acepta JSON y multipart (el comprobante de pago llega como archivo).
func ValidateCheckoutIntegrity() gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := bindCheckoutInput(c)
		if err != nil {
			RespondIntegrityError(c, err)
			return
		}
		if len(input.Items) == 0 {
			utils.Fail(c, http.StatusBadRequest, "El carrito está vacío")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		products := make(map[string]models.Product, len(input.Items))
		for _, item := range input.Items {
			product, err := findProductByID(ctx, item.ProductID)
			if err != nil {
				RespondIntegrityError(c, err)
				return
			}
			if err := checkCheckoutItem(product, item); err != nil {
				RespondIntegrityError(c, err)
				return
			}
			products[item.ProductID] = product
		}

		c.Set("checkoutInput", input)
		c.Set("checkoutProducts", products)
		c.Next()
	}
}

func bindCheckoutInput(c *gin.Context) (models.CheckoutInput, error) {
	var input models.CheckoutInput

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") ||
		contentType == "application/x-www-form-urlencoded" {
		items, err := parseCheckoutItemsString(c.PostForm("items"))
		if err != nil {
			return input, err
		}
		input.Items = items
		input.PaymentMethodID = c.PostForm("paymentMethodId")
		input.ShippingAddress = c.PostForm("shippingAddress")
		input.Reference = c.PostForm("reference")
		return input, nil
	}

	var body struct {
		Items           json.RawMessage `json:"items"`
		PaymentMethodID string          `json:"paymentMethodId"`
		ShippingAddress string          `json:"shippingAddress"`
		Reference       string          `json:"reference"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return input, ErrMalformedItems
	}
	items, err := parseCheckoutItems(body.Items)
	if err != nil {
		return input, err
	}
	input.Items = items
	input.PaymentMethodID = body.PaymentMethodID
	input.ShippingAddress = body.ShippingAddress
	input.Reference = body.Reference
	return input, nil
}
