package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"
)

func CreatePaymentType(c *gin.Context) {
	var pt models.PaymentType
	if err := c.ShouldBindJSON(&pt); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	pt.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.PaymentTypeCollection.InsertOne(ctx, pt); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando el tipo de pago")
		return
	}
	utils.Respond(c, http.StatusCreated, pt, "Tipo de pago creado")
}

func GetPaymentTypes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.PaymentTypeCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando los tipos de pago")
		return
	}
	defer cursor.Close(ctx)

	var types []models.PaymentType
	if err = cursor.All(ctx, &types); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando los tipos de pago")
		return
	}
	utils.Respond(c, http.StatusOK, types, "")
}

func DeletePaymentType(c *gin.Context) {
	deleteByID(c, config.PaymentTypeCollection, "Tipo de pago")
}

func CreatePaymentMethod(c *gin.Context) {
	var pm models.PaymentMethod
	if err := c.ShouldBindJSON(&pm); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	pm.ID = primitive.NewObjectID()
	pm.Active = true

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.PaymentMethodCollection.InsertOne(ctx, pm); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando el método de pago")
		return
	}
	utils.Respond(c, http.StatusCreated, pm, "Método de pago creado")
}

// GetPaymentMethods lista los metodos activos; con ?all=true el admin
// ve tambien los desactivados.
func GetPaymentMethods(c *gin.Context) {
	filter := bson.M{"active": true}
	if c.Query("all") == "true" {
		filter = bson.M{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.PaymentMethodCollection.Find(ctx, filter)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando los métodos de pago")
		return
	}
	defer cursor.Close(ctx)

	var methods []models.PaymentMethod
	if err = cursor.All(ctx, &methods); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando los métodos de pago")
		return
	}
	utils.Respond(c, http.StatusOK, methods, "")
}

func EditPaymentMethod(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de método de pago inválido")
		return
	}

	var input struct {
		Name          string `json:"name,omitempty"`
		OwnerName     string `json:"owner_name,omitempty"`
		OwnerID       string `json:"owner_id,omitempty"`
		AccountNumber string `json:"account_number,omitempty"`
		Phone         string `json:"phone,omitempty"`
		Email         string `json:"email,omitempty"`
		Active        *bool  `json:"active,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.OwnerName != "" {
		set["owner_name"] = input.OwnerName
	}
	if input.OwnerID != "" {
		set["owner_id"] = input.OwnerID
	}
	if input.AccountNumber != "" {
		set["account_number"] = input.AccountNumber
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}
	if len(set) == 0 {
		utils.Fail(c, http.StatusBadRequest, "Nada que actualizar")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.PaymentMethodCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando el método de pago")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Método de pago no encontrado")
		return
	}
	utils.Respond(c, http.StatusOK, gin.H{"updated": res.ModifiedCount}, "Método de pago actualizado")
}

func DeletePaymentMethod(c *gin.Context) {
	deleteByID(c, config.PaymentMethodCollection, "Método de pago")
}
