package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/middleware"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// lineUnitPrice es el precio efectivo de una linea: precio menos descuento.
func lineUnitPrice(price, discount float64) float64 {
	return round2(price * (1 - discount/100))
}

// shippingCostFor aplica el umbral de envio gratis de la configuracion.
func shippingCostFor(subtotal float64, cfg models.Config) float64 {
	if subtotal >= cfg.FreeShippingThreshold {
		return 0
	}
	return cfg.ShippingPrice
}

// getLatestConfig devuelve la configuracion vigente: la fila mas
// reciente por created_at. mongo.ErrNoDocuments cuando no hay ninguna.
func getLatestConfig(ctx context.Context) (models.Config, error) {
	var cfg models.Config
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := config.ConfigCollection.FindOne(ctx, bson.M{}, opts).Decode(&cfg)
	return cfg, err
}

var errConfigMissing = errors.New("no hay configuración de tasa registrada")

// saleConfig decide la tasa de la venta individual: sin configuración
// registrada la venta se rechaza.
func saleConfig(cfg models.Config, err error) (models.Config, error) {
	if err == mongo.ErrNoDocuments {
		return models.Config{}, errConfigMissing
	}
	return cfg, err
}

// checkoutConfig decide la tasa del carrito: sin configuración la tasa
// cae a 1 y el envío queda en cero. Comportamiento heredado del sistema
// original que se conserva a propósito.
func checkoutConfig(cfg models.Config, err error) (models.Config, error) {
	if err == mongo.ErrNoDocuments {
		return models.Config{DolarRate: 1}, nil
	}
	return cfg, err
}

// decrementStock descuenta existencia solo si alcanza: el filtro exige
// amount >= quantity, asi dos compras simultaneas no pueden pasar ambas.
func decrementStock(ctx context.Context, productID string, quantity int64) error {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return fmt.Errorf("%w: %s", middleware.ErrProductNotFound, productID)
	}
	res, err := config.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": objID, "amount": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"amount": -quantity}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: producto %s", middleware.ErrInsufficientStock, productID)
	}
	return nil
}

// restockItems revierte descuentos de stock ya aplicados cuando una
// linea posterior del carrito falla.
func restockItems(ctx context.Context, items []models.CheckoutItem) {
	for _, item := range items {
		objID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			continue
		}
		if _, err := config.ProductCollection.UpdateOne(ctx, bson.M{"_id": objID},
			bson.M{"$inc": bson.M{"amount": item.Quantity}}); err != nil {
			log.Printf("no se pudo reponer el stock de %s: %v", item.ProductID, err)
		}
	}
}

// buildSaleRecords arma una venta por linea del carrito. Todas las
// lineas llevan la misma tasa: se captura una sola vez por solicitud.
func buildSaleRecords(input models.CheckoutInput, products map[string]models.Product,
	buyerID string, rate float64, orderID string, receipt string, saleDate time.Time) []models.Sale {

	sales := make([]models.Sale, 0, len(input.Items))
	for _, item := range input.Items {
		product := products[item.ProductID]
		sales = append(sales, models.Sale{
			ProductID:       item.ProductID,
			BuyerID:         buyerID,
			PaymentMethodID: input.PaymentMethodID,
			OrderID:         orderID,
			Quantity:        item.Quantity,
			UnitPrice:       lineUnitPrice(product.Price, product.Discount),
			OriginalPrice:   product.Price,
			Discount:        product.Discount,
			DailyRate:       rate,
			Status:          "pending",
			Reference:       input.Reference,
			ReceiptImage:    receipt,
			SaleDate:        saleDate,
		})
	}
	return sales
}

func checkoutSubtotal(input models.CheckoutInput, products map[string]models.Product) float64 {
	subtotal := 0.0
	for _, item := range input.Items {
		product := products[item.ProductID]
		subtotal += lineUnitPrice(product.Price, product.Discount) * float64(item.Quantity)
	}
	return round2(subtotal)
}

// CreateSale persiste una venta individual ya validada por el
// middleware de integridad. Sin configuracion de tasa la venta se
// rechaza (a diferencia del checkout, que asume tasa 1).
func CreateSale(c *gin.Context) {
	input := c.MustGet("saleInput").(models.SaleInput)
	product := c.MustGet("saleProduct").(models.Product)
	buyerID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := getLatestConfig(ctx)
	cfg, err = saleConfig(cfg, err)
	if err != nil {
		if errors.Is(err, errConfigMissing) {
			utils.Fail(c, http.StatusBadRequest, "No hay configuración de tasa registrada")
			return
		}
		log.Printf("error leyendo configuración: %v", err)
		utils.Fail(c, http.StatusInternalServerError, "Error leyendo la configuración")
		return
	}

	if err := decrementStock(ctx, input.ProductID, input.Quantity); err != nil {
		middleware.RespondIntegrityError(c, err)
		return
	}

	sale := models.Sale{
		ProductID:       input.ProductID,
		BuyerID:         buyerID,
		PaymentMethodID: input.PaymentMethodID,
		Quantity:        input.Quantity,
		UnitPrice:       lineUnitPrice(product.Price, product.Discount),
		OriginalPrice:   product.Price,
		Discount:        product.Discount,
		DailyRate:       cfg.DolarRate,
		Status:          "pending",
		Reference:       input.Reference,
		SaleDate:        time.Now(),
	}
	if input.Rating != nil {
		sale.Rating = *input.Rating
	}

	res, err := config.SaleCollection.InsertOne(ctx, sale)
	if err != nil {
		log.Printf("error guardando la venta: %v", err)
		utils.Fail(c, http.StatusInternalServerError, "Error guardando la venta")
		return
	}
	sale.ID = res.InsertedID.(primitive.ObjectID)

	middleware.SalesCreatedTotal.WithLabelValues("single").Inc()
	utils.Respond(c, http.StatusCreated, sale, "Venta registrada")
}

// Checkout convierte el carrito validado en una orden con una venta por
// linea. Sin configuracion la tasa cae a 1, comportamiento heredado del
// sistema original que se conserva a proposito.
func Checkout(c *gin.Context) {
	input := c.MustGet("checkoutInput").(models.CheckoutInput)
	products := c.MustGet("checkoutProducts").(map[string]models.Product)
	buyerID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg, err := getLatestConfig(ctx)
	cfg, err = checkoutConfig(cfg, err)
	if err != nil {
		log.Printf("error leyendo configuración: %v", err)
		utils.Fail(c, http.StatusInternalServerError, "Error leyendo la configuración")
		return
	}

	receipt := ""
	if file, err := c.FormFile("receipt"); err == nil {
		receipt, err = SaveReceiptPhoto(c, file)
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "No se pudo guardar el comprobante: "+err.Error())
			return
		}
	}

	for i, item := range input.Items {
		if err := decrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			// Otra compra pudo ganar la carrera en una linea posterior:
			// se repone lo ya descontado antes de rechazar el carrito.
			restockItems(ctx, input.Items[:i])
			middleware.RespondIntegrityError(c, err)
			return
		}
	}

	subtotal := checkoutSubtotal(input, products)
	shipping := shippingCostFor(subtotal, cfg)

	order := models.Order{
		ID:              primitive.NewObjectID(),
		BuyerID:         buyerID,
		PaymentMethodID: input.PaymentMethodID,
		ShippingAddress: input.ShippingAddress,
		ShippingCost:    shipping,
		Total:           round2(subtotal + shipping),
		Status:          "pending",
		ViewToken:       uuid.NewString(),
		CreatedAt:       time.Now(),
	}
	if _, err := config.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Printf("error guardando la orden: %v", err)
		utils.Fail(c, http.StatusInternalServerError, "Error guardando la orden")
		return
	}

	sales := buildSaleRecords(input, products, buyerID, cfg.DolarRate, order.ID.Hex(), receipt, time.Now())
	docs := make([]interface{}, len(sales))
	for i := range sales {
		docs[i] = sales[i]
	}
	insertRes, err := config.SaleCollection.InsertMany(ctx, docs)
	if err != nil {
		log.Printf("error guardando las ventas de la orden %s: %v", order.ID.Hex(), err)
		utils.Fail(c, http.StatusInternalServerError, "Error guardando las ventas")
		return
	}
	for i, id := range insertRes.InsertedIDs {
		sales[i].ID = id.(primitive.ObjectID)
	}

	middleware.SalesCreatedTotal.WithLabelValues("checkout").Add(float64(len(sales)))

	if storeEmail := os.Getenv("STORE_EMAIL"); storeEmail != "" {
		body := fmt.Sprintf("Nueva orden %s por %.2f USD (%d productos).",
			order.ID.Hex(), order.Total, len(sales))
		if err := utils.SendEmail(storeEmail, "Nueva orden", body); err != nil {
			log.Printf("no se pudo notificar la orden %s: %v", order.ID.Hex(), err)
		}
	}

	utils.Respond(c, http.StatusCreated, gin.H{"order": order, "sales": sales}, "Orden creada")
}

// UploadReceipt adjunta el comprobante de pago a una venta existente.
func UploadReceipt(c *gin.Context) {
	saleID := c.PostForm("saleId")
	objID, err := primitive.ObjectIDFromHex(saleID)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de venta inválido")
		return
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Falta el archivo del comprobante")
		return
	}
	filename, err := SaveReceiptPhoto(c, file)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "No se pudo guardar el comprobante: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.SaleCollection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"receipt_image": filename}})
	if err != nil {
		log.Printf("error adjuntando comprobante a %s: %v", saleID, err)
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando la venta")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Venta no encontrada")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"receipt_image": filename}, "Comprobante adjuntado")
}

// UpdateSale permite al admin cambiar estado, referencia o comprobante.
func UpdateSale(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de venta inválido")
		return
	}

	var input struct {
		Status       string `json:"status,omitempty"`
		Reference    string `json:"reference,omitempty"`
		ReceiptImage string `json:"receipt_image,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	set := bson.M{}
	if input.Status != "" {
		set["status"] = input.Status
	}
	if input.Reference != "" {
		set["reference"] = input.Reference
	}
	if input.ReceiptImage != "" {
		set["receipt_image"] = input.ReceiptImage
	}
	if len(set) == 0 {
		utils.Fail(c, http.StatusBadRequest, "Nada que actualizar")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.SaleCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		log.Printf("error actualizando la venta %s: %v", objID.Hex(), err)
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando la venta")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Venta no encontrada")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"updated": res.ModifiedCount}, "Venta actualizada")
}

func DeleteSale(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de venta inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.SaleCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		log.Printf("error eliminando la venta %s: %v", objID.Hex(), err)
		utils.Fail(c, http.StatusInternalServerError, "Error eliminando la venta")
		return
	}
	if res.DeletedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Venta no encontrada")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{}, "Venta eliminada")
}

// GetAllSales lista ventas para el admin, con filtro opcional por estado.
func GetAllSales(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.SaleCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "sale_date", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las ventas")
		return
	}
	defer cursor.Close(ctx)

	var sales []models.Sale
	if err = cursor.All(ctx, &sales); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las ventas")
		return
	}

	utils.Respond(c, http.StatusOK, sales, "")
}

// GetMySales lista las ventas del comprador autenticado.
func GetMySales(c *gin.Context) {
	buyerID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.SaleCollection.Find(ctx, bson.M{"buyerid": buyerID},
		options.Find().SetSort(bson.D{{Key: "sale_date", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las ventas")
		return
	}
	defer cursor.Close(ctx)

	var sales []models.Sale
	if err = cursor.All(ctx, &sales); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las ventas")
		return
	}

	utils.Respond(c, http.StatusOK, sales, "")
}
