package model

import (
	"github.com/shopspring/decimal"
)

// DetallePedido is one immutable order line. PrecioUnitario is the second
// (permanent) price snapshot, copied verbatim from the cart line at
// checkout. Subtotal is persisted, not derived at read time, so historical
// orders keep returning the same number even if the computation ever
// changes.
//
// The producto FK is RESTRICT: a product that appears in any order line can
// never be hard-deleted.
type DetallePedido struct {
	ID             uint            `gorm:"primaryKey"`
	PedidoID       uint            `gorm:"not null;index"`
	ProductoID     uint            `gorm:"not null;index"`
	Cantidad       int             `gorm:"not null;default:1;check:cantidad >= 1"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (DetallePedido) TableName() string { return "detalle_pedidos" }

// CalcularSubtotal sets Subtotal = PrecioUnitario × Cantidad rounded to two
// decimals. Must run before every persist that touches cantidad or precio.
func (d *DetallePedido) CalcularSubtotal() {
	d.Subtotal = d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad))).Round(2)
}
