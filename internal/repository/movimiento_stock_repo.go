package repository

import (
	"context"

	"github.com/FelipeF32/Articulacion/internal/model"

	"gorm.io/gorm"
)

// MovimientoStockRepository records the stock audit trail.
type MovimientoStockRepository interface {
	RegistrarTx(tx *gorm.DB, m *model.MovimientoStock) error
	ListarPorProducto(ctx context.Context, productoID uint, limit int) ([]model.MovimientoStock, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) RegistrarTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) ListarPorProducto(ctx context.Context, productoID uint, limit int) ([]model.MovimientoStock, error) {
	if limit <= 0 {
		limit = 50
	}
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movs).Error
	return movs, err
}
