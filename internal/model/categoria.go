package model

import (
	"time"
)

// Categoria is the top level of the catalog hierarchy.
// Activo defaults to false: a newly created category stays hidden until an
// administrator activates it, and no subcategory can be created under it
// while inactive. Deactivating a category sweeps activo=false over every
// subcategory and product that references it (see service.CategoriaService).
type Categoria struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"size:100;uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
