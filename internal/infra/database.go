package infra

import (
	"fmt"

	"github.com/FelipeF32/Articulacion/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations applies AutoMigrate for the full entity graph. Order
// matters: parents before children so the FK constraints (CASCADE down the
// catalog, RESTRICT from productos into detalle_pedidos) are created
// against existing tables.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Categoria{},
		&model.Subcategoria{},
		&model.Producto{},
		&model.Carrito{},
		&model.Pedido{},
		&model.DetallePedido{},
		&model.MovimientoStock{},
	)
}
