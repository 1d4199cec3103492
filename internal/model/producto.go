package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto hangs from both levels of the hierarchy: it references its
// Categoria directly and its Subcategoria, so the deactivation sweep can
// reach it through either path.
type Producto struct {
	ID             uint   `gorm:"primaryKey"`
	Nombre         string `gorm:"size:120;index;not null"`
	Descripcion    *string
	Precio         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock          int             `gorm:"not null;default:0;check:stock >= 0"`
	Activo         bool            `gorm:"not null;default:true"`
	CategoriaID    uint            `gorm:"not null;index"`
	SubcategoriaID uint            `gorm:"not null;index"`
	// Imagen is an opaque path managed by the upload layer.
	Imagen    *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Categoria    *Categoria    `gorm:"foreignKey:CategoriaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Subcategoria *Subcategoria `gorm:"foreignKey:SubcategoriaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Producto) TableName() string { return "productos" }

// HayStock reports whether the product can satisfy the requested quantity.
// Point-in-time read: callers that write afterwards must hold a row lock on
// the product for the duration of the transaction.
func (p *Producto) HayStock(cantidad int) bool {
	return cantidad <= p.Stock
}
