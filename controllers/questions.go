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

// CreateQuestion registra una pregunta de un cliente sobre un producto.
func CreateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(question.ProductID)
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

	question.ID = primitive.NewObjectID()
	question.UserID = c.GetString("userID")
	question.CreatedAt = time.Now()
	question.Answer = ""

	if _, err := config.QuestionCollection.InsertOne(ctx, question); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando la pregunta")
		return
	}

	utils.Respond(c, http.StatusCreated, question, "Pregunta registrada")
}

func GetQuestionsByProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.QuestionCollection.Find(ctx, bson.M{"productid": c.Param("id")},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las preguntas")
		return
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err = cursor.All(ctx, &questions); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las preguntas")
		return
	}

	utils.Respond(c, http.StatusOK, questions, "")
}

// AnswerQuestion la responde el admin.
func AnswerQuestion(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de pregunta inválido")
		return
	}

	var input struct {
		Answer string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.QuestionCollection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"answer": input.Answer, "answered_at": time.Now()}})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando la pregunta")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Pregunta no encontrada")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{}, "Pregunta respondida")
}

func DeleteQuestion(c *gin.Context) {
	deleteByID(c, config.QuestionCollection, "Pregunta")
}
