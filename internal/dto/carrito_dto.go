package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AgregarCarritoRequest struct {
	ProductoID uint `json:"producto_id" validate:"required"`
	Cantidad   int  `json:"cantidad"    validate:"required,min=1"`
}

type ActualizarCantidadRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemCarritoResponse struct {
	ID             uint            `json:"id"`
	ProductoID     uint            `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CarritoResponse struct {
	Items []ItemCarritoResponse `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

type VaciarCarritoResponse struct {
	Eliminados int64 `json:"eliminados"`
}
