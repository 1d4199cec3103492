package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHayStockLimite(t *testing.T) {
	p := &Producto{Stock: 5}

	assert.True(t, p.HayStock(4))
	assert.True(t, p.HayStock(5))
	assert.False(t, p.HayStock(6))
}

func TestHayStockProductoSinStock(t *testing.T) {
	p := &Producto{Stock: 0}
	assert.False(t, p.HayStock(1))
}

func TestSubtotalCarritoDerivado(t *testing.T) {
	c := &Carrito{
		Cantidad:       3,
		PrecioUnitario: decimal.RequireFromString("150.00"),
	}
	assert.Equal(t, "450", c.Subtotal().String())
}

func TestCalcularSubtotalRedondea(t *testing.T) {
	d := &DetallePedido{
		Cantidad:       3,
		PrecioUnitario: decimal.RequireFromString("0.335"),
	}
	d.CalcularSubtotal()
	assert.Equal(t, "1.01", d.Subtotal.String())
}
