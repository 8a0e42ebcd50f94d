package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"
)

// RecordVisit registra una visita de pagina. Endpoint publico que el
// frontend llama en cada navegacion.
func RecordVisit(c *gin.Context) {
	var input struct {
		Page string `json:"page" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	now := time.Now()
	visit := models.Visit{
		ID:        primitive.NewObjectID(),
		Page:      input.Page,
		IP:        getClientIP(c),
		Device:    c.Request.UserAgent(),
		Day:       now.Format("2006-01-02"),
		CreatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := config.VisitCollection.InsertOne(ctx, visit); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error registrando la visita")
		return
	}

	utils.Respond(c, http.StatusCreated, gin.H{}, "Visita registrada")
}

// GetVisitStats combina los acumulados diarios con las visitas todavia
// sin acumular del dia corriente.
func GetVisitStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := config.VisitDailyCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "day", Value: -1}}).SetLimit(90))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las estadísticas")
		return
	}
	defer cursor.Close(ctx)

	var daily []models.VisitDaily
	if err = cursor.All(ctx, &daily); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las estadísticas")
		return
	}

	today := time.Now().Format("2006-01-02")
	todayCount, err := config.VisitCollection.CountDocuments(ctx, bson.M{"day": today})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error contando las visitas de hoy")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{
		"daily": daily,
		"today": gin.H{"day": today, "total": todayCount},
	}, "")
}
