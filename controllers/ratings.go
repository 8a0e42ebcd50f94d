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

// CreateRating guarda la calificacion de un producto. Una por usuario
// y producto: si ya existe se reemplaza.
func CreateRating(c *gin.Context) {
	var rating models.Rating
	if err := c.ShouldBindJSON(&rating); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	if rating.Stars < 1 || rating.Stars > 5 {
		utils.Fail(c, http.StatusBadRequest, "La calificación debe estar entre 1 y 5")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(rating.ProductID)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de producto inválido")
		return
	}
	var product models.Product
	if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando el producto")
		}
		return
	}

	rating.UserID = c.GetString("userID")
	rating.CreatedAt = time.Now()

	filter := bson.M{"productid": rating.ProductID, "userid": rating.UserID}
	update := bson.M{"$set": bson.M{
		"stars":      rating.Stars,
		"comment":    rating.Comment,
		"created_at": rating.CreatedAt,
	}}
	if _, err := config.RatingCollection.UpdateOne(ctx, filter, update,
		options.Update().SetUpsert(true)); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando la calificación")
		return
	}

	utils.Respond(c, http.StatusCreated, rating, "Calificación registrada")
}

// GetRatingsByProduct devuelve las calificaciones y el promedio.
func GetRatingsByProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.RatingCollection.Find(ctx, bson.M{"productid": c.Param("id")},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las calificaciones")
		return
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err = cursor.All(ctx, &ratings); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las calificaciones")
		return
	}

	average := 0.0
	if len(ratings) > 0 {
		sum := int64(0)
		for _, r := range ratings {
			sum += r.Stars
		}
		average = float64(sum) / float64(len(ratings))
	}

	utils.Respond(c, http.StatusOK, gin.H{
		"ratings": ratings,
		"average": average,
		"total":   len(ratings),
	}, "")
}

func DeleteRating(c *gin.Context) {
	deleteByID(c, config.RatingCollection, "Calificación")
}
