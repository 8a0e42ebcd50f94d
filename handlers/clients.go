package handlers

import (
	"context"
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

// GetClientInfo devuelve el perfil del usuario autenticado sin la contraseña.
func GetClientInfo(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.Fail(c, http.StatusUnauthorized, "No autorizado")
		return
	}

	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de usuario inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = config.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "Usuario no encontrado")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando el usuario")
		}
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{
		"id":        user.ID.Hex(),
		"name":      user.Name,
		"lastname":  user.Lastname,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
		"provider":  user.Provider,
		"photo_url": user.PhotoURL,
	}, "")
}

// UpdateClientInfo actualiza nombre, apellido y teléfono del usuario autenticado.
func UpdateClientInfo(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.Fail(c, http.StatusUnauthorized, "No autorizado")
		return
	}

	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de usuario inválido")
		return
	}

	var input struct {
		Name     string `json:"name"`
		Lastname string `json:"lastname"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	update := bson.M{}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Lastname != "" {
		update["lastname"] = input.Lastname
	}
	if input.Phone != "" {
		update["phone"] = input.Phone
	}
	if len(update) == 0 {
		utils.Fail(c, http.StatusBadRequest, "Nada que actualizar")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.UserCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando el usuario")
		return
	}
	if result.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	utils.Respond(c, http.StatusOK, nil, "Perfil actualizado")
}

// GetOrderByToken permite consultar una orden por su token de seguimiento
// sin necesidad de sesión. El token se genera al momento del checkout.
func GetOrderByToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.Fail(c, http.StatusBadRequest, "Token requerido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := config.OrderCollection.FindOne(ctx, bson.M{"view_token": token}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "Orden no encontrada")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando la orden")
		}
		return
	}

	cursor, err := config.SaleCollection.Find(ctx, bson.M{"orderid": order.ID.Hex()},
		options.Find().SetSort(bson.D{{Key: "sale_date", Value: 1}}))
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

	utils.Respond(c, http.StatusOK, gin.H{"order": order, "sales": sales}, "")
}
