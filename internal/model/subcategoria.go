package model

import (
	"time"
)

// Subcategoria belongs to exactly one Categoria. Nombre is unique only
// within the parent category: two different categories may both have a
// "Accesorios" subcategory.
type Subcategoria struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"size:100;not null;uniqueIndex:idx_nombre_categoria"`
	Descripcion *string
	CategoriaID uint `gorm:"not null;index;uniqueIndex:idx_nombre_categoria"`
	Activo      bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Deleting a categoria hard-deletes its subcategorias.
	Categoria *Categoria `gorm:"foreignKey:CategoriaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Subcategoria) TableName() string { return "subcategorias" }
