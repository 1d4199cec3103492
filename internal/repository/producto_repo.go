package repository

import (
	"context"

	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Crear(ctx context.Context, p *model.Producto) error
	ObtenerPorID(ctx context.Context, id uint) (*model.Producto, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Actualizar(ctx context.Context, p *model.Producto) error
	Desactivar(ctx context.Context, id uint) error
	Reactivar(ctx context.Context, id uint) error

	// ObtenerPorIDForUpdateTx locks the product row so a stock check and the
	// write that follows it form one atomic unit.
	ObtenerPorIDForUpdateTx(tx *gorm.DB, id uint) (*model.Producto, error)
	// DescontarStockTx decrements stock inside a caller-owned transaction.
	DescontarStockTx(tx *gorm.DB, id uint, cantidad int) error
	// Cascade sweeps — both paths into productos.
	DesactivarPorCategoriaTx(tx *gorm.DB, categoriaID uint) error
	DesactivarPorSubcategoriaTx(tx *gorm.DB, subcategoriaID uint) error

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Crear(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.CategoriaID != 0 {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}
	if filter.SubcategoriaID != 0 {
		q = q.Where("subcategoria_id = ?", filter.SubcategoriaID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Actualizar(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Desactivar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) ObtenerPorIDForUpdateTx(tx *gorm.DB, id uint) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uint, cantidad int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock - ?", cantidad)).Error
}

func (r *productoRepo) DesactivarPorCategoriaTx(tx *gorm.DB, categoriaID uint) error {
	return tx.Model(&model.Producto{}).
		Where("categoria_id = ? AND activo = true", categoriaID).
		Update("activo", false).Error
}

func (r *productoRepo) DesactivarPorSubcategoriaTx(tx *gorm.DB, subcategoriaID uint) error {
	return tx.Model(&model.Producto{}).
		Where("subcategoria_id = ? AND activo = true", subcategoriaID).
		Update("activo", false).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
