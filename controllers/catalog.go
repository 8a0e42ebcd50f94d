package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"
)

// Marcas, modelos de vehiculo, categorias y subcategorias comparten el
// mismo CRUD plano; cada grupo trabaja sobre su coleccion.

func CreateBrand(c *gin.Context) {
	var brand models.Brand
	if err := c.ShouldBindJSON(&brand); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	brand.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.BrandCollection.InsertOne(ctx, brand); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando la marca")
		return
	}
	utils.Respond(c, http.StatusCreated, brand, "Marca creada")
}

func GetAllBrands(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.BrandCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las marcas")
		return
	}
	defer cursor.Close(ctx)

	var brands []models.Brand
	if err = cursor.All(ctx, &brands); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las marcas")
		return
	}
	utils.Respond(c, http.StatusOK, brands, "")
}

func EditBrand(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de marca inválido")
		return
	}
	var input struct {
		Name     string `json:"name,omitempty"`
		PhotoURL string `json:"photourl,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.PhotoURL != "" {
		set["photourl"] = input.PhotoURL
	}
	if len(set) == 0 {
		utils.Fail(c, http.StatusBadRequest, "Nada que actualizar")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.BrandCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando la marca")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Marca no encontrada")
		return
	}
	utils.Respond(c, http.StatusOK, gin.H{"updated": res.ModifiedCount}, "Marca actualizada")
}

func DeleteBrand(c *gin.Context) {
	deleteByID(c, config.BrandCollection, "Marca")
}

func CreateCarModel(c *gin.Context) {
	var model models.CarModel
	if err := c.ShouldBindJSON(&model); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	model.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// la marca referida debe existir
	brandID, err := primitive.ObjectIDFromHex(model.BrandID)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de marca inválido")
		return
	}
	var brand models.Brand
	if err := config.BrandCollection.FindOne(ctx, bson.M{"_id": brandID}).Decode(&brand); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "Marca no encontrada")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando la marca")
		}
		return
	}

	if _, err := config.CarModelCollection.InsertOne(ctx, model); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando el modelo")
		return
	}
	utils.Respond(c, http.StatusCreated, model, "Modelo creado")
}

// GetCarModels lista modelos, con filtro opcional por marca.
func GetCarModels(c *gin.Context) {
	filter := bson.M{}
	if v := c.Query("brandid"); v != "" {
		filter["brandid"] = v
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.CarModelCollection.Find(ctx, filter)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando los modelos")
		return
	}
	defer cursor.Close(ctx)

	var carModels []models.CarModel
	if err = cursor.All(ctx, &carModels); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando los modelos")
		return
	}
	utils.Respond(c, http.StatusOK, carModels, "")
}

func DeleteCarModel(c *gin.Context) {
	deleteByID(c, config.CarModelCollection, "Modelo")
}

func CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	category.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.CategoryCollection.InsertOne(ctx, category); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando la categoría")
		return
	}
	utils.Respond(c, http.StatusCreated, category, "Categoría creada")
}

func GetAllCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.CategoryCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las categorías")
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err = cursor.All(ctx, &categories); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las categorías")
		return
	}
	utils.Respond(c, http.StatusOK, categories, "")
}

// EditCategory acepta multipart para poder reemplazar la foto.
func EditCategory(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de categoría inválido")
		return
	}

	set := bson.M{}
	if name := c.PostForm("name"); name != "" {
		set["name"] = name
	}
	if file, err := c.FormFile("photo"); err == nil {
		filename, err := SaveCategoryPhoto(c, file, objID.Hex())
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "No se pudo guardar la foto: "+err.Error())
			return
		}
		set["photourl"] = filename
	}
	if len(set) == 0 {
		utils.Fail(c, http.StatusBadRequest, "Nada que actualizar")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.CategoryCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando la categoría")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Categoría no encontrada")
		return
	}
	utils.Respond(c, http.StatusOK, gin.H{"updated": res.ModifiedCount}, "Categoría actualizada")
}

func DeleteCategory(c *gin.Context) {
	deleteByID(c, config.CategoryCollection, "Categoría")
}

func CreateSubcategory(c *gin.Context) {
	var sub models.Subcategory
	if err := c.ShouldBindJSON(&sub); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	sub.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(sub.CategoryID)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de categoría inválido")
		return
	}
	var category models.Category
	if err := config.CategoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "Categoría no encontrada")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando la categoría")
		}
		return
	}

	if _, err := config.SubcategoryCollection.InsertOne(ctx, sub); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando la subcategoría")
		return
	}
	utils.Respond(c, http.StatusCreated, sub, "Subcategoría creada")
}

// GetSubcategories lista subcategorias, con filtro opcional por categoria.
func GetSubcategories(c *gin.Context) {
	filter := bson.M{}
	if v := c.Query("categoryid"); v != "" {
		filter["categoryid"] = v
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.SubcategoryCollection.Find(ctx, filter)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando las subcategorías")
		return
	}
	defer cursor.Close(ctx)

	var subs []models.Subcategory
	if err = cursor.All(ctx, &subs); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando las subcategorías")
		return
	}
	utils.Respond(c, http.StatusOK, subs, "")
}

func DeleteSubcategory(c *gin.Context) {
	deleteByID(c, config.SubcategoryCollection, "Subcategoría")
}

func deleteByID(c *gin.Context, collection *mongo.Collection, label string) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error eliminando: "+label)
		return
	}
	if res.DeletedCount == 0 {
		utils.Fail(c, http.StatusNotFound, label+" no encontrada")
		return
	}
	utils.Respond(c, http.StatusOK, gin.H{}, label+" eliminada")
}
