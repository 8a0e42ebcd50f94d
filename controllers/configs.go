package controllers

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

func validateConfig(cfg models.Config) string {
	if cfg.DolarRate <= 0 {
		return "La tasa del dólar debe ser mayor a cero"
	}
	if cfg.FreeShippingThreshold < 0 {
		return "El umbral de envío gratis no puede ser negativo"
	}
	if cfg.ShippingPrice < 0 {
		return "El precio de envío no puede ser negativo"
	}
	return ""
}

// CreateConfig agrega una nueva fila de configuracion. Las anteriores
// quedan como historial; la vigente siempre es la mas reciente.
func CreateConfig(c *gin.Context) {
	var cfg models.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	if msg := validateConfig(cfg); msg != "" {
		utils.Fail(c, http.StatusBadRequest, msg)
		return
	}

	cfg.ID = primitive.NewObjectID()
	cfg.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.ConfigCollection.InsertOne(ctx, cfg); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando la configuración")
		return
	}

	utils.Respond(c, http.StatusCreated, cfg, "Configuración creada")
}

// GetCurrentConfig devuelve la fila vigente, la que usan las ventas.
func GetCurrentConfig(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := getLatestConfig(ctx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "No hay configuración registrada")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando la configuración")
		}
		return
	}

	utils.Respond(c, http.StatusOK, cfg, "")
}

func GetAllConfigs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.ConfigCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las configuraciones")
		return
	}
	defer cursor.Close(ctx)

	var configs []models.Config
	if err = cursor.All(ctx, &configs); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las configuraciones")
		return
	}

	utils.Respond(c, http.StatusOK, configs, "")
}

func DeleteConfig(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de configuración inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.ConfigCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error eliminando la configuración")
		return
	}
	if res.DeletedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Configuración no encontrada")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{}, "Configuración eliminada")
}
