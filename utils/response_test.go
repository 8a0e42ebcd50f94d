package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaltre10/repuestos-oriente-sub001/models"
)

func TestRespondEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, 201, gin.H{"id": "x"}, "Creado")

	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 201, resp.Status)
	assert.Equal(t, "Creado", resp.Message)
	assert.NotNil(t, resp.Body)
}

func TestFailEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Fail(c, 404, "No encontrado")

	assert.True(t, c.IsAborted())

	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, "No encontrado", resp.Message)
}

func TestIsSuccessStatus(t *testing.T) {
	assert.True(t, IsSuccessStatus(200))
	assert.True(t, IsSuccessStatus(399))
	assert.False(t, IsSuccessStatus(400))
	assert.False(t, IsSuccessStatus(500))
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", hash)

	assert.NoError(t, VerifyPassword(hash, "secreto123"))
	assert.Error(t, VerifyPassword(hash, "otra-clave"))
}
