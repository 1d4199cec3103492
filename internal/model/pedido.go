package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pedido is a placed order. Total is written once at checkout from the sum
// of its detalle subtotals.
type Pedido struct {
	ID        uint            `gorm:"primaryKey"`
	UsuarioID uint            `gorm:"not null;index"`
	Estado    string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario  *Usuario        `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Detalles []DetallePedido `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }
