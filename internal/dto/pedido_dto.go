package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetallePedidoResponse struct {
	ProductoID     uint            `json:"producto_id"`
	Producto       string          `json:"producto,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID        uint                    `json:"id"`
	UsuarioID uint                    `json:"usuario_id"`
	Estado    string                  `json:"estado"`
	Total     decimal.Decimal         `json:"total"`
	Detalles  []DetallePedidoResponse `json:"detalles"`
	CreatedAt string                  `json:"created_at"`
}

// ProductoMasVendido is one row of the best-seller report; scanned straight
// from the GROUP BY query.
type ProductoMasVendido struct {
	ProductoID   uint  `json:"producto_id"`
	TotalVendido int64 `json:"total_vendido"`
}
