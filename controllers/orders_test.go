package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaltre10/repuestos-oriente-sub001/models"
)

func TestExtendOrdersEmptySerializesAsArray(t *testing.T) {
	extended := extendOrders(nil, nil)
	require.NotNil(t, extended)

	data, err := json.Marshal(extended)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestExtendOrdersAttachesNames(t *testing.T) {
	orders := []models.Order{
		{BuyerID: "b1", Total: 100},
		{BuyerID: "b2", Total: 50},
	}
	names := map[string]string{"b1": "Ana Pérez"}

	extended := extendOrders(orders, names)
	require.Len(t, extended, 2)
	assert.Equal(t, "Ana Pérez", extended[0].FullName)
	assert.Equal(t, 100.0, extended[0].Total)
	// Sin nombre resuelto cae al marcador.
	assert.Equal(t, "Desconocido", extended[1].FullName)
}
