package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"
)

// GetProductSalesReport arma la tabla de ventas de un producto con el
// nombre de cada comprador y los totales acumulados.
func GetProductSalesReport(c *gin.Context) {
	productID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de producto inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	var product models.Product
	if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando el producto")
		}
		return
	}

	cursor, err := config.SaleCollection.Find(ctx, bson.M{"productid": productID},
		options.Find().SetSort(bson.D{{Key: "sale_date", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las ventas")
		return
	}
	defer cursor.Close(ctx)

	type SaleRow struct {
		SaleID    primitive.ObjectID `json:"sale_id"`
		BuyerName string             `json:"buyer_name"`
		SaleDate  time.Time          `json:"sale_date"`
		Quantity  int64              `json:"quantity"`
		UnitPrice float64            `json:"unit_price"`
		DailyRate float64            `json:"daily_rate"`
		Status    string             `json:"status"`
	}

	var table []SaleRow
	var totalQuantity int64
	var totalUSD float64

	for cursor.Next(ctx) {
		var sale models.Sale
		if err := cursor.Decode(&sale); err != nil {
			continue
		}

		buyerName := "Desconocido"
		if buyerID, err := primitive.ObjectIDFromHex(sale.BuyerID); err == nil {
			var buyer struct {
				Name     string `bson:"name"`
				Lastname string `bson:"lastname"`
			}
			if err := config.UserCollection.FindOne(ctx, bson.M{"_id": buyerID}).Decode(&buyer); err == nil {
				buyerName = buyer.Name + " " + buyer.Lastname
			}
		}

		table = append(table, SaleRow{
			SaleID:    sale.ID,
			BuyerName: buyerName,
			SaleDate:  sale.SaleDate,
			Quantity:  sale.Quantity,
			UnitPrice: sale.UnitPrice,
			DailyRate: sale.DailyRate,
			Status:    sale.Status,
		})
		totalQuantity += sale.Quantity
		totalUSD += sale.UnitPrice * float64(sale.Quantity)
	}

	if err := cursor.Err(); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error procesando las ventas")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{
		"name":          product.Name,
		"sales_table":   table,
		"total_entries": len(table),
		"totalquantity": totalQuantity,
		"total_usd":     round2(totalUSD),
	}, "")
}

// ExportSalesExcel descarga todas las ventas en un archivo xlsx.
func ExportSalesExcel(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := config.SaleCollection.Find(ctx, bson.M{},
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

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Ventas")
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error creando la hoja de cálculo")
		return
	}

	headers := []string{
		"ID", "Producto", "Comprador", "Orden", "Cantidad",
		"Precio unitario", "Precio original", "Descuento", "Tasa",
		"Estado", "Referencia", "Fecha",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, s := range sales {
		row := sheet.AddRow()
		row.AddCell().SetValue(s.ID.Hex())
		row.AddCell().SetValue(s.ProductID)
		row.AddCell().SetValue(s.BuyerID)
		row.AddCell().SetValue(s.OrderID)
		row.AddCell().SetValue(s.Quantity)
		row.AddCell().SetValue(s.UnitPrice)
		row.AddCell().SetValue(s.OriginalPrice)
		row.AddCell().SetValue(s.Discount)
		row.AddCell().SetValue(s.DailyRate)
		row.AddCell().SetValue(s.Status)
		row.AddCell().SetValue(s.Reference)
		row.AddCell().SetValue(s.SaleDate.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=ventas.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error escribiendo el archivo")
		return
	}
}
