package repository

import (
	"context"

	"github.com/FelipeF32/Articulacion/internal/model"

	"gorm.io/gorm"
)

// CarritoRepository defines data access for cart lines. All writes run
// inside caller-owned transactions: the service pairs every stock check
// with the write under the same product row lock.
type CarritoRepository interface {
	ObtenerPorID(ctx context.Context, id uint) (*model.Carrito, error)
	ObtenerPorUsuarioYProductoTx(tx *gorm.DB, usuarioID, productoID uint) (*model.Carrito, error)
	ListarPorUsuario(ctx context.Context, usuarioID uint) ([]model.Carrito, error)
	CrearTx(tx *gorm.DB, c *model.Carrito) error
	ActualizarCantidadTx(tx *gorm.DB, id uint, cantidad int) error
	EliminarTx(tx *gorm.DB, id uint) error
	// VaciarTx removes every line for the user and reports how many went away.
	VaciarTx(tx *gorm.DB, usuarioID uint) (int64, error)

	DB() *gorm.DB
}

type carritoRepo struct{ db *gorm.DB }

func NewCarritoRepository(db *gorm.DB) CarritoRepository { return &carritoRepo{db: db} }

func (r *carritoRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Carrito, error) {
	var c model.Carrito
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carritoRepo) ObtenerPorUsuarioYProductoTx(tx *gorm.DB, usuarioID, productoID uint) (*model.Carrito, error) {
	var c model.Carrito
	err := tx.Where("usuario_id = ? AND producto_id = ?", usuarioID, productoID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carritoRepo) ListarPorUsuario(ctx context.Context, usuarioID uint) ([]model.Carrito, error) {
	var items []model.Carrito
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *carritoRepo) CrearTx(tx *gorm.DB, c *model.Carrito) error {
	return tx.Create(c).Error
}

func (r *carritoRepo) ActualizarCantidadTx(tx *gorm.DB, id uint, cantidad int) error {
	return tx.Model(&model.Carrito{}).Where("id = ?", id).Update("cantidad", cantidad).Error
}

func (r *carritoRepo) EliminarTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Carrito{}, id).Error
}

func (r *carritoRepo) VaciarTx(tx *gorm.DB, usuarioID uint) (int64, error) {
	res := tx.Where("usuario_id = ?", usuarioID).Delete(&model.Carrito{})
	return res.RowsAffected, res.Error
}

func (r *carritoRepo) DB() *gorm.DB { return r.db }
