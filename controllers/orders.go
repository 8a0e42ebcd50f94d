package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"
)

// GetOrderByID devuelve la orden con sus ventas y el nombre del
// comprador. Un cliente solo puede ver sus propias ordenes.
func GetOrderByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de orden inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = config.OrderCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "Orden no encontrada")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando la orden")
		}
		return
	}

	if c.GetString("role") != "admin" && order.BuyerID != c.GetString("userID") {
		utils.Fail(c, http.StatusNotFound, "Orden no encontrada")
		return
	}

	extended, err := extendOrder(ctx, order)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error armando la orden")
		return
	}

	utils.Respond(c, http.StatusOK, extended, "")
}

// extendOrder agrega a la orden sus ventas y el nombre del comprador.
func extendOrder(ctx context.Context, order models.Order) (gin.H, error) {
	cursor, err := config.SaleCollection.Find(ctx, bson.M{"orderid": order.ID.Hex()})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []models.Sale
	if err = cursor.All(ctx, &sales); err != nil {
		return nil, err
	}

	fullName := "Desconocido"
	if buyerID, err := primitive.ObjectIDFromHex(order.BuyerID); err == nil {
		var buyer struct {
			Name     string `bson:"name"`
			Lastname string `bson:"lastname"`
		}
		if err := config.UserCollection.FindOne(ctx, bson.M{"_id": buyerID}).Decode(&buyer); err == nil {
			fullName = fmt.Sprintf("%s %s", buyer.Name, buyer.Lastname)
		}
	}

	return gin.H{
		"order":    order,
		"sales":    sales,
		"fullname": fullName,
	}, nil
}

func GetMyOrders(c *gin.Context) {
	buyerID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.OrderCollection.Find(ctx, bson.M{"buyerid": buyerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las órdenes")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las órdenes")
		return
	}

	utils.Respond(c, http.StatusOK, orders, "")
}

type ExtendedOrder struct {
	models.Order
	FullName string `json:"fullname"`
}

// extendOrders adjunta el nombre del comprador a cada orden. Devuelve
// siempre un arreglo, aunque no haya ordenes, para que el cuerpo
// serialice como [] y no como null.
func extendOrders(orders []models.Order, names map[string]string) []ExtendedOrder {
	extended := make([]ExtendedOrder, 0, len(orders))
	for _, order := range orders {
		fullName := names[order.BuyerID]
		if fullName == "" {
			fullName = "Desconocido"
		}
		extended = append(extended, ExtendedOrder{Order: order, FullName: fullName})
	}
	return extended
}

// GetAllOrders lista todas las ordenes para el admin, cada una con el
// nombre completo del comprador.
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := config.OrderCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las órdenes")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las órdenes")
		return
	}

	names := make(map[string]string, len(orders))
	for _, order := range orders {
		if _, seen := names[order.BuyerID]; seen {
			continue
		}
		buyerID, err := primitive.ObjectIDFromHex(order.BuyerID)
		if err != nil {
			continue
		}
		var buyer struct {
			Name     string `bson:"name"`
			Lastname string `bson:"lastname"`
		}
		if err := config.UserCollection.FindOne(ctx, bson.M{"_id": buyerID}).Decode(&buyer); err == nil {
			names[order.BuyerID] = fmt.Sprintf("%s %s", buyer.Name, buyer.Lastname)
		}
	}

	utils.Respond(c, http.StatusOK, extendOrders(orders, names), "")
}

// UpdateOrderStatus cambia el estado de la orden y propaga el mismo
// estado a sus ventas.
func UpdateOrderStatus(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de orden inválido")
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.OrderCollection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando la orden")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Orden no encontrada")
		return
	}

	if _, err := config.SaleCollection.UpdateMany(ctx, bson.M{"orderid": objID.Hex()},
		bson.M{"$set": bson.M{"status": input.Status}}); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando las ventas de la orden")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"status": input.Status}, "Orden actualizada")
}
