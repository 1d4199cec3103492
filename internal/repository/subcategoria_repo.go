package repository

import (
	"context"

	"github.com/FelipeF32/Articulacion/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubcategoriaRepository defines data access for Subcategoria.
type SubcategoriaRepository interface {
	CrearTx(tx *gorm.DB, s *model.Subcategoria) error
	Listar(ctx context.Context, categoriaID uint, incluirInactivas bool) ([]model.Subcategoria, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.Subcategoria, error)
	ObtenerPorNombreYCategoria(ctx context.Context, nombre string, categoriaID uint) (*model.Subcategoria, error)
	Actualizar(ctx context.Context, s *model.Subcategoria) error
	ObtenerPorIDForUpdateTx(tx *gorm.DB, id uint) (*model.Subcategoria, error)
	ActualizarActivoTx(tx *gorm.DB, id uint, activo bool) error
	// DesactivarPorCategoriaTx is the fan-out half of the category cascade.
	DesactivarPorCategoriaTx(tx *gorm.DB, categoriaID uint) error
	ContarProductos(ctx context.Context, id uint) (int64, error)

	DB() *gorm.DB
}

type subcategoriaRepo struct{ db *gorm.DB }

func NewSubcategoriaRepository(db *gorm.DB) SubcategoriaRepository {
	return &subcategoriaRepo{db: db}
}

func (r *subcategoriaRepo) CrearTx(tx *gorm.DB, s *model.Subcategoria) error {
	return tx.Create(s).Error
}

func (r *subcategoriaRepo) Listar(ctx context.Context, categoriaID uint, incluirInactivas bool) ([]model.Subcategoria, error) {
	var list []model.Subcategoria
	q := r.db.WithContext(ctx)
	if categoriaID != 0 {
		q = q.Where("categoria_id = ?", categoriaID)
	}
	if !incluirInactivas {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *subcategoriaRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Subcategoria, error) {
	var s model.Subcategoria
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subcategoriaRepo) ObtenerPorNombreYCategoria(ctx context.Context, nombre string, categoriaID uint) (*model.Subcategoria, error) {
	var s model.Subcategoria
	err := r.db.WithContext(ctx).
		Where("lower(nombre) = lower(?) AND categoria_id = ?", nombre, categoriaID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subcategoriaRepo) Actualizar(ctx context.Context, s *model.Subcategoria) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *subcategoriaRepo) ObtenerPorIDForUpdateTx(tx *gorm.DB, id uint) (*model.Subcategoria, error) {
	var s model.Subcategoria
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subcategoriaRepo) ActualizarActivoTx(tx *gorm.DB, id uint, activo bool) error {
	return tx.Model(&model.Subcategoria{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *subcategoriaRepo) DesactivarPorCategoriaTx(tx *gorm.DB, categoriaID uint) error {
	return tx.Model(&model.Subcategoria{}).
		Where("categoria_id = ? AND activo = true", categoriaID).
		Update("activo", false).Error
}

func (r *subcategoriaRepo) ContarProductos(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("subcategoria_id = ?", id).Count(&n).Error
	return n, err
}

func (r *subcategoriaRepo) DB() *gorm.DB { return r.db }
