package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

// CambiarEstadoRequest toggles activo on a category or subcategory.
// Deactivation cascades; activation does not.
type CambiarEstadoRequest struct {
	Activo *bool `json:"activo" validate:"required"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoriaResponse struct {
	ID          uint    `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      bool    `json:"activo"`
}

// CategoriaDetalleResponse adds the child counters surfaced on GET by id.
type CategoriaDetalleResponse struct {
	CategoriaResponse
	Subcategorias int64 `json:"subcategorias"`
	Productos     int64 `json:"productos"`
}
