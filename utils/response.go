package utils

import (
    "github.com/gin-gonic/gin"

    "github.com/kaltre10/repuestos-oriente-sub001/models"
)

// Respond escribe el sobre {success, body, message, status}.
// success se deriva del codigo: todo lo menor a 400 es exito.
func Respond(c *gin.Context, status int, body interface{}, message string) {
    if body == nil {
        body = gin.H{}
    }
    c.JSON(status, models.ApiResponse{
        Success: status < 400,
        Body:    body,
        Message: message,
        Status:  status,
    })
}

// Fail escribe un sobre de error y corta la cadena de handlers.
func Fail(c *gin.Context, status int, message string) {
    c.JSON(status, models.ApiResponse{
        Success: false,
        Body:    gin.H{},
        Message: message,
        Status:  status,
    })
    c.Abort()
}

func IsSuccessStatus(status int) bool {
    return status < 400
}
