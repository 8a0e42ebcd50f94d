package controllers

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kaltre10/repuestos-oriente-sub001/api"
	"github.com/kaltre10/repuestos-oriente-sub001/config"
	"github.com/kaltre10/repuestos-oriente-sub001/models"
	"github.com/kaltre10/repuestos-oriente-sub001/utils"
)

// Codigos de recuperacion en memoria; expiran a los 10 minutos.
var verificationCodes = make(map[string]string)
var codeExpiry = make(map[string]time.Time)

func generateVerificationCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func RegisterUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Lastname string `json:"lastname" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := config.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		utils.Fail(c, http.StatusBadRequest, "Ya existe un usuario con ese correo")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando el usuario")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error procesando la contraseña")
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Lastname:  input.Lastname,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  hashed,
		Role:      "client",
		Provider:  "local",
		CreatedAt: time.Now(),
	}
	if _, err := config.UserCollection.InsertOne(ctx, user); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error guardando el usuario")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error generando el token")
		return
	}

	user.Password = ""
	utils.Respond(c, http.StatusCreated, gin.H{"user": user, "token": token}, "Usuario registrado")
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Correo o contraseña incorrectos")
		return
	}

	if err := utils.VerifyPassword(user.Password, input.Password); err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Correo o contraseña incorrectos")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error generando el token")
		return
	}

	session := models.Session{
		UserID:    user.ID,
		Role:      user.Role,
		IP:        getClientIP(c),
		Device:    c.Request.UserAgent(),
		Timestamp: time.Now(),
	}
	if _, err := config.SessionCollection.InsertOne(ctx, session); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error registrando la sesión")
		return
	}

	c.SetCookie("token", token, 3600*24, "/", "", true, true)
	utils.Respond(c, http.StatusOK, gin.H{
		"token":    token,
		"userID":   user.ID.Hex(),
		"role":     user.Role,
		"fullName": user.Name + " " + user.Lastname,
		"photo":    user.PhotoURL,
	}, "Sesión iniciada")
}

// GoogleLogin valida el idToken contra Google y crea o actualiza el
// usuario. Emite el mismo JWT que el login con contraseña.
func GoogleLogin(c *gin.Context) {
	var input struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	info, err := api.VerifyGoogleIDToken(input.IDToken)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Token de Google inválido")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = config.UserCollection.FindOne(ctx, bson.M{"email": info.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		user = models.User{
			ID:        primitive.NewObjectID(),
			Name:      info.GivenName,
			Lastname:  info.FamilyName,
			Email:     info.Email,
			Role:      "client",
			Provider:  "google",
			PhotoURL:  info.Picture,
			CreatedAt: time.Now(),
		}
		if _, err := config.UserCollection.InsertOne(ctx, user); err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Error guardando el usuario")
			return
		}
	} else if err == nil {
		update := bson.M{"$set": bson.M{"photo_url": info.Picture}}
		if _, err := config.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
			log.Printf("no se pudo actualizar el perfil de %s: %v", info.Email, err)
		}
	} else {
		utils.Fail(c, http.StatusInternalServerError, "Error consultando el usuario")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error generando el token")
		return
	}

	session := models.Session{
		UserID:    user.ID,
		Role:      user.Role,
		IP:        getClientIP(c),
		Device:    c.Request.UserAgent(),
		Timestamp: time.Now(),
	}
	if _, err := config.SessionCollection.InsertOne(ctx, session); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error registrando la sesión")
		return
	}

	c.SetCookie("token", token, 3600*24, "/", "", true, true)
	utils.Respond(c, http.StatusOK, gin.H{
		"token":    token,
		"userID":   user.ID.Hex(),
		"role":     user.Role,
		"fullName": user.Name + " " + user.Lastname,
		"photo":    user.PhotoURL,
	}, "Sesión iniciada")
}

// RequestPasswordReset envia un codigo de 6 digitos al correo.
func RequestPasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := config.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.Fail(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	code := generateVerificationCode()
	verificationCodes[input.Email] = code
	codeExpiry[input.Email] = time.Now().Add(10 * time.Minute)

	body := fmt.Sprintf("Su código de recuperación es: %s. No lo comparta con nadie.", code)
	if err := utils.SendEmail(input.Email, "Recuperación de contraseña", body); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "No se pudo enviar el correo")
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{}, "Código de verificación enviado")
}

func ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"newpassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}

	storedCode, exists := verificationCodes[input.Email]
	if !exists || storedCode != input.Code || time.Now().After(codeExpiry[input.Email]) {
		utils.Fail(c, http.StatusUnauthorized, "Código inválido o vencido")
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error procesando la contraseña")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := config.UserCollection.UpdateOne(ctx, bson.M{"email": input.Email},
		bson.M{"$set": bson.M{"password": hashed}})
	if err != nil {
		log.Println("error actualizando la contraseña:", err)
		utils.Fail(c, http.StatusInternalServerError, "Error actualizando la contraseña")
		return
	}
	if res.MatchedCount == 0 {
		utils.Fail(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	delete(verificationCodes, input.Email)
	delete(codeExpiry, input.Email)

	utils.Respond(c, http.StatusOK, gin.H{}, "Contraseña restablecida")
}

func getClientIP(c *gin.Context) string {
	ip := c.Request.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = c.ClientIP()
	}
	return ip
}
