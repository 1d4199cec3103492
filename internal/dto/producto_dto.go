package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre         string          `json:"nombre"          validate:"required,min=2,max=120"`
	Descripcion    *string         `json:"descripcion"`
	Precio         decimal.Decimal `json:"precio"          validate:"required"`
	Stock          int             `json:"stock"           validate:"min=0"`
	CategoriaID    uint            `json:"categoria_id"    validate:"required"`
	SubcategoriaID uint            `json:"subcategoria_id" validate:"required"`
	Imagen         *string         `json:"imagen"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"      validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
	Imagen      *string          `json:"imagen"`
}

// AjustarStockRequest applies a signed delta to the product stock.
type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3,max=255"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre         string `form:"nombre"`
	CategoriaID    uint   `form:"categoria_id"`
	SubcategoriaID uint   `form:"subcategoria_id"`
	Activo         string `form:"activo"` // "", "false", "all"
	Page           int    `form:"page,default=1"   validate:"min=1"`
	Limit          int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID             uint            `json:"id"`
	Nombre         string          `json:"nombre"`
	Descripcion    *string         `json:"descripcion,omitempty"`
	Precio         decimal.Decimal `json:"precio"`
	Stock          int             `json:"stock"`
	Activo         bool            `json:"activo"`
	CategoriaID    uint            `json:"categoria_id"`
	SubcategoriaID uint            `json:"subcategoria_id"`
	Imagen         *string         `json:"imagen,omitempty"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// MovimientoStockResponse is one row of the product's movement history.
// ReferenciaID carries the pedido that caused the movement, when any.
type MovimientoStockResponse struct {
	ID            uint   `json:"id"`
	ProductoID    uint   `json:"producto_id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo,omitempty"`
	ReferenciaID  *uint  `json:"referencia_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}
