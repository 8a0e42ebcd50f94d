package controllers

import (
	"context"
	"net/http"
	"strconv"
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

// AddProduct crea un producto. Acepta multipart con el campo photo.
func AddProduct(c *gin.Context) {
	var product models.Product
	product.BrandID = c.PostForm("brandid")
	product.CarModelID = c.PostForm("carmodelid")
	product.CategoryID = c.PostForm("categoryid")
	product.SubcategoryID = c.PostForm("subcategoryid")
	product.Name = c.PostForm("name")
	product.Description = c.PostForm("description")
	product.Price, _ = strconv.ParseFloat(c.PostForm("price"), 64)
	product.Discount, _ = strconv.ParseFloat(c.PostForm("discount"), 64)
	product.Amount, _ = strconv.ParseInt(c.PostForm("amount"), 10, 64)
	product.Active = c.PostForm("active") != "false"

	if product.Name == "" || product.BrandID == "" || product.CategoryID == "" {
		utils.Fail(c, http.StatusBadRequest, "Faltan campos obligatorios: name, brandid, categoryid")
		return
	}
	if product.Price <= 0 {
		utils.Fail(c, http.StatusBadRequest, "El precio debe ser mayor a cero")
		return
	}
	if product.Discount < 0 || product.Discount > 100 {
		utils.Fail(c, http.StatusBadRequest, "El descuento debe estar entre 0 y 100")
		return
	}
	if product.Amount < 0 {
		utils.Fail(c, http.StatusBadRequest, "La existencia no puede ser negativa")
		return
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if file, err := c.FormFile("photo"); err == nil {
		filename, err := SaveProductPhoto(c, file, product.ID.Hex())
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		product.Productphotourl = filename
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.ProductCollection.InsertOne(ctx, product); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando el producto")
		return
	}

	utils.Respond(c, http.StatusCreated, product, "Producto creado")
}

// GetAllProducts lista el catalogo publico: solo productos activos,
// con filtros opcionales por marca, modelo, categoria y subcategoria.
func GetAllProducts(c *gin.Context) {
	filter := bson.M{"active": true}
	if v := c.Query("brandid"); v != "" {
		filter["brandid"] = v
	}
	if v := c.Query("carmodelid"); v != "" {
		filter["carmodelid"] = v
	}
	if v := c.Query("categoryid"); v != "" {
		filter["categoryid"] = v
	}
	if v := c.Query("subcategoryid"); v != "" {
		filter["subcategoryid"] = v
	}
	if v := c.Query("search"); v != "" {
		filter["name"] = bson.M{"$regex": v, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.ProductCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando los productos")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando los productos")
		return
	}

	utils.Respond(c, http.StatusOK, products, "")
}

// GetAllProductsAdmin incluye tambien los inactivos.
func GetAllProductsAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.ProductCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando los productos")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error decodificando los productos")
		return
	}

	utils.Respond(c, http.StatusOK, products, "")
}

func GetProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de producto inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	err = config.ProductCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
		} else {
			utils.Fail(c, http.StatusInternalServerError, "Error consultando el producto")
		}
		return
	}

	utils.Respond(c, http.StatusOK, product, "")
}

func EditProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de producto inválido")
		return
	}

	var input models.UpdateProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.BrandID != "" {
		set["brandid"] = input.BrandID
	}
	if input.CarModelID != "" {
		set["carmodelid"] = input.CarModelID
	}
	if input.CategoryID != "" {
		set["categoryid"] = input.CategoryID
	}
	if input.SubcategoryID != "" {
		set["subcategoryid"] = input.SubcategoryID
	}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Productphotourl != "" {
		set["productphotourl"] = input.Productphotourl
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			utils.Fail(c, http.StatusBadRequest, "El precio debe ser mayor a cero")
			return
		}
		set["price"] = *input.Price
	}
	if input.Discount != nil {
		if *input.Discount < 0 || *input.Discount > 100 {
			utils.Fail(c, http.StatusBadRequest, "El descuento debe estar entre 0 y 100")
			return
		}
		set["discount"] = *input.Discount
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			utils.Fail(c, http.StatusBadRequest, "La existencia no puede ser negativa")
			return
		}
		set["amount"] = *input.Amount
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.ProductCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando el producto")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"updated": res.ModifiedCount}, "Producto actualizado")
}

func DeleteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "ID de producto inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.ProductCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error eliminando el producto")
		return
	}
	if res.DeletedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Producto no encontrado")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{}, "Producto eliminado")
}
