package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Carrito is one cart line: a (usuario, producto) pair with a quantity and
// the unit price snapshotted when the line was first inserted. The composite
// unique index closes the race between two concurrent adds of the same
// product; application-level merging handles the friendly path.
type Carrito struct {
	ID         uint `gorm:"primaryKey"`
	UsuarioID  uint `gorm:"not null;index;uniqueIndex:idx_usuario_producto"`
	ProductoID uint `gorm:"not null;uniqueIndex:idx_usuario_producto"`
	Cantidad   int  `gorm:"not null;default:1;check:cantidad >= 1"`
	// PrecioUnitario is frozen at insert time; later catalog price changes
	// do not touch existing cart lines.
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Usuario  *Usuario  `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Carrito) TableName() string { return "carritos" }

// Subtotal is always derived, never persisted — a cart has no cached total
// that could drift from its lines.
func (c *Carrito) Subtotal() decimal.Decimal {
	return c.PrecioUnitario.Mul(decimal.NewFromInt(int64(c.Cantidad)))
}
