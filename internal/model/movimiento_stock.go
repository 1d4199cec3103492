package model

import (
	"time"
)

// MovimientoStock is the audit trail for every stock change. Checkout writes
// one row per order line (tipo "pedido", negative cantidad); manual
// adjustments write tipo "ajuste".
type MovimientoStock struct {
	ID            uint   `gorm:"primaryKey"`
	ProductoID    uint   `gorm:"not null;index"`
	Tipo          string `gorm:"type:varchar(20);not null"`
	Cantidad      int    `gorm:"not null"`
	StockAnterior int    `gorm:"not null"`
	StockNuevo    int    `gorm:"not null"`
	Motivo        string
	// ReferenciaID points at the pedido that caused the movement, when any.
	ReferenciaID *uint
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }
