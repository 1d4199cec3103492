package repository

import (
	"context"

	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PedidoRepository defines data access for orders and their line items.
type PedidoRepository interface {
	// CrearTx persists the pedido together with its detalles in the caller's
	// transaction (GORM cascades the association insert).
	CrearTx(tx *gorm.DB, p *model.Pedido) error
	ObtenerPorID(ctx context.Context, id uint) (*model.Pedido, error)
	ListarPorUsuario(ctx context.Context, usuarioID uint) ([]model.Pedido, error)
	// TotalPedido sums the persisted subtotals — never recomputes from price.
	TotalPedido(ctx context.Context, pedidoID uint) (decimal.Decimal, error)
	// MasVendidos groups all order lines by product, summing quantities.
	// Descending by total, ties broken by ascending producto_id.
	MasVendidos(ctx context.Context, limite int) ([]dto.ProductoMasVendido, error)

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) CrearTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Preload("Detalles.Producto").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) ListarPorUsuario(ctx context.Context, usuarioID uint) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) TotalPedido(ctx context.Context, pedidoID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.DetallePedido{}).
		Where("pedido_id = ?", pedidoID).
		Select("SUM(subtotal)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *pedidoRepo) MasVendidos(ctx context.Context, limite int) ([]dto.ProductoMasVendido, error) {
	var rows []dto.ProductoMasVendido
	err := r.db.WithContext(ctx).Model(&model.DetallePedido{}).
		Select("producto_id, SUM(cantidad) AS total_vendido").
		Group("producto_id").
		Order("total_vendido DESC, producto_id ASC").
		Limit(limite).
		Scan(&rows).Error
	return rows, err
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
