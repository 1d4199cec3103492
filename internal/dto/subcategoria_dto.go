package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearSubcategoriaRequest struct {
	Nombre      string  `json:"nombre"       validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
	CategoriaID uint    `json:"categoria_id" validate:"required"`
}

type ActualizarSubcategoriaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type SubcategoriaResponse struct {
	ID          uint    `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	CategoriaID uint    `json:"categoria_id"`
	Activo      bool    `json:"activo"`
}
