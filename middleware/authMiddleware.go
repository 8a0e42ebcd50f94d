package middleware

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/kaltre10/repuestos-oriente-sub001/utils"
)

func AuthMiddleware(role string) gin.HandlerFunc {
    return func(c *gin.Context) {
        token, err := c.Cookie("token")
        if err != nil {
            authHeader := c.GetHeader("Authorization")
            if authHeader == "" {
                utils.Fail(c, http.StatusUnauthorized, "Token de autorización no proporcionado")
                return
            }
            parts := strings.Split(authHeader, " ")
            if len(parts) != 2 || parts[0] != "Bearer" {
                utils.Fail(c, http.StatusUnauthorized, "Formato de cabecera Authorization inválido")
                return
            }
            token = parts[1]
        }

        claims, err := utils.ValidateToken(token)
        if err != nil {
            utils.Fail(c, http.StatusUnauthorized, "Token de autorización inválido")
            return
        }
        // el admin puede usar cualquier ruta protegida
        if claims.Role != role && claims.Role != "admin" {
            utils.Fail(c, http.StatusUnauthorized, "Token de autorización inválido")
            return
        }

        c.Set("userID", claims.ID)
        c.Set("role", claims.Role)

        c.Next()
    }
}
