package service

import (
	"context"
	"errors"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CarritoService owns cart line items. Every mutation locks the product row
// first so the stock check and the write that follows are one atomic unit:
// two concurrent adds for the last units cannot both pass the check.
type CarritoService interface {
	Agregar(ctx context.Context, usuarioID uint, req dto.AgregarCarritoRequest) (*dto.ItemCarritoResponse, error)
	ActualizarCantidad(ctx context.Context, usuarioID, itemID uint, cantidad int) (*dto.ItemCarritoResponse, error)
	Obtener(ctx context.Context, usuarioID uint) (*dto.CarritoResponse, error)
	CalcularTotal(ctx context.Context, usuarioID uint) (decimal.Decimal, error)
	Eliminar(ctx context.Context, usuarioID, itemID uint) error
	Vaciar(ctx context.Context, usuarioID uint) (int64, error)
}

type carritoService struct {
	repo     repository.CarritoRepository
	prodRepo repository.ProductoRepository
}

func NewCarritoService(repo repository.CarritoRepository, prodRepo repository.ProductoRepository) CarritoService {
	return &carritoService{repo: repo, prodRepo: prodRepo}
}

func mapItemCarrito(c *model.Carrito, nombreProducto string) *dto.ItemCarritoResponse {
	return &dto.ItemCarritoResponse{
		ID:             c.ID,
		ProductoID:     c.ProductoID,
		Producto:       nombreProducto,
		Cantidad:       c.Cantidad,
		PrecioUnitario: c.PrecioUnitario,
		Subtotal:       c.Subtotal(),
	}
}

// Agregar inserts a cart line, snapshotting the product's current price.
// A second add of the same product merges quantities instead of failing on
// the unique (usuario, producto) pair; the merged quantity is what the
// stock check validates. The original snapshot price is kept on merge.
func (s *carritoService) Agregar(ctx context.Context, usuarioID uint, req dto.AgregarCarritoRequest) (*dto.ItemCarritoResponse, error) {
	var out *dto.ItemCarritoResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.prodRepo.ObtenerPorIDForUpdateTx(tx, req.ProductoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("el producto seleccionado no existe")
			}
			return apierror.Internal("error al obtener el producto", err)
		}
		if !p.Activo {
			return apierror.Validation("no se puede agregar un producto inactivo al carrito")
		}

		existing, err := s.repo.ObtenerPorUsuarioYProductoTx(tx, usuarioID, req.ProductoID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Internal("error al consultar el carrito", err)
		}

		if existing != nil {
			merged := existing.Cantidad + req.Cantidad
			if !p.HayStock(merged) {
				return apierror.InsufficientStock(merged, p.Stock)
			}
			if err := s.repo.ActualizarCantidadTx(tx, existing.ID, merged); err != nil {
				return apierror.Internal("error al actualizar el carrito", err)
			}
			existing.Cantidad = merged
			out = mapItemCarrito(existing, p.Nombre)
			return nil
		}

		if !p.HayStock(req.Cantidad) {
			return apierror.InsufficientStock(req.Cantidad, p.Stock)
		}
		item := &model.Carrito{
			UsuarioID:      usuarioID,
			ProductoID:     req.ProductoID,
			Cantidad:       req.Cantidad,
			PrecioUnitario: p.Precio,
		}
		if err := s.repo.CrearTx(tx, item); err != nil {
			return apierror.Internal("error al agregar al carrito", err)
		}
		out = mapItemCarrito(item, p.Nombre)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

// ActualizarCantidad revalidates stock for the new quantity under the
// product row lock. The snapshot price is never refreshed here.
func (s *carritoService) ActualizarCantidad(ctx context.Context, usuarioID, itemID uint, cantidad int) (*dto.ItemCarritoResponse, error) {
	if cantidad < 1 {
		return nil, apierror.ValidationField("cantidad", "la cantidad debe ser al menos 1")
	}

	item, err := s.repo.ObtenerPorID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("item de carrito no encontrado")
		}
		return nil, apierror.Internal("error al obtener el carrito", err)
	}
	if item.UsuarioID != usuarioID {
		return nil, apierror.NotFound("item de carrito no encontrado")
	}

	var out *dto.ItemCarritoResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.prodRepo.ObtenerPorIDForUpdateTx(tx, item.ProductoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("el producto seleccionado no existe")
			}
			return apierror.Internal("error al obtener el producto", err)
		}
		if !p.HayStock(cantidad) {
			return apierror.InsufficientStock(cantidad, p.Stock)
		}
		if err := s.repo.ActualizarCantidadTx(tx, item.ID, cantidad); err != nil {
			return apierror.Internal("error al actualizar el carrito", err)
		}
		item.Cantidad = cantidad
		out = mapItemCarrito(item, p.Nombre)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

func (s *carritoService) Obtener(ctx context.Context, usuarioID uint) (*dto.CarritoResponse, error) {
	items, err := s.repo.ListarPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, apierror.Internal("error al obtener el carrito", err)
	}
	resp := &dto.CarritoResponse{
		Items: make([]dto.ItemCarritoResponse, 0, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		nombre := ""
		if items[i].Producto != nil {
			nombre = items[i].Producto.Nombre
		}
		item := mapItemCarrito(&items[i], nombre)
		resp.Items = append(resp.Items, *item)
		resp.Total = resp.Total.Add(item.Subtotal)
	}
	return resp, nil
}

// CalcularTotal sums line subtotals on every call — there is no persisted
// cart total that could drift.
func (s *carritoService) CalcularTotal(ctx context.Context, usuarioID uint) (decimal.Decimal, error) {
	items, err := s.repo.ListarPorUsuario(ctx, usuarioID)
	if err != nil {
		return decimal.Zero, apierror.Internal("error al obtener el carrito", err)
	}
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}
	return total, nil
}

func (s *carritoService) Eliminar(ctx context.Context, usuarioID, itemID uint) error {
	item, err := s.repo.ObtenerPorID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("item de carrito no encontrado")
		}
		return apierror.Internal("error al obtener el carrito", err)
	}
	if item.UsuarioID != usuarioID {
		return apierror.NotFound("item de carrito no encontrado")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.EliminarTx(tx, itemID); err != nil {
			return apierror.Internal("error al eliminar el item", err)
		}
		return nil
	})
}

func (s *carritoService) Vaciar(ctx context.Context, usuarioID uint) (int64, error) {
	var count int64
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		n, err := s.repo.VaciarTx(tx, usuarioID)
		if err != nil {
			return apierror.Internal("error al vaciar el carrito", err)
		}
		count = n
		return nil
	})
	return count, txErr
}
