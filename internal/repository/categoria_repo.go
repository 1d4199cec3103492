package repository

import (
	"context"

	"github.com/FelipeF32/Articulacion/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoriaRepository defines data access for Categoria. The ...Tx variants
// run against a caller-owned transaction; the cascade sweep in the service
// layer composes them into one atomic unit.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.Categoria) error
	Listar(ctx context.Context, incluirInactivas bool) ([]model.Categoria, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.Categoria, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	Actualizar(ctx context.Context, c *model.Categoria) error

	// ObtenerPorIDForUpdateTx locks the category row (SELECT ... FOR UPDATE)
	// so concurrent toggles of the same category serialize instead of
	// interleaving their child sweeps.
	ObtenerPorIDForUpdateTx(tx *gorm.DB, id uint) (*model.Categoria, error)
	ActualizarActivoTx(tx *gorm.DB, id uint, activo bool) error

	ContarSubcategorias(ctx context.Context, id uint) (int64, error)
	ContarProductos(ctx context.Context, id uint) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepo{db: db}
}

func (r *categoriaRepo) Crear(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) Listar(ctx context.Context, incluirInactivas bool) ([]model.Categoria, error) {
	var list []model.Categoria
	q := r.db.WithContext(ctx)
	if !incluirInactivas {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *categoriaRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Categoria, error) {
	var c model.Categoria
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) Actualizar(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) ObtenerPorIDForUpdateTx(tx *gorm.DB, id uint) (*model.Categoria, error) {
	var c model.Categoria
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) ActualizarActivoTx(tx *gorm.DB, id uint, activo bool) error {
	return tx.Model(&model.Categoria{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *categoriaRepo) ContarSubcategorias(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Subcategoria{}).Where("categoria_id = ?", id).Count(&n).Error
	return n, err
}

func (r *categoriaRepo) ContarProductos(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("categoria_id = ?", id).Count(&n).Error
	return n, err
}

func (r *categoriaRepo) DB() *gorm.DB { return r.db }
